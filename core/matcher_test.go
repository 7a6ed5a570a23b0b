package core

import "testing"

func TestMQTTMatcher(t *testing.T) {
	m := MQTTMatcher{}

	tests := []struct {
		filter string
		topic  string
		want   bool
	}{
		// Exact match
		{"sensors/kitchen/temp", "sensors/kitchen/temp", true},
		{"sensors/kitchen/temp", "sensors/kitchen/hum", false},
		{"sensors", "sensors", true},

		// Single-level wildcard
		{"sensors/+/temp", "sensors/kitchen/temp", true},
		{"sensors/+/temp", "sensors/hall/temp", true},
		{"sensors/+/temp", "sensors/kitchen/door/temp", false},
		{"+/kitchen/temp", "sensors/kitchen/temp", true},
		{"sensors/+", "sensors/kitchen", true},
		{"sensors/+", "sensors", false},

		// Multi-level wildcard
		{"sensors/#", "sensors/kitchen/temp", true},
		{"sensors/#", "sensors/kitchen", true},
		{"sensors/#", "sensors", true},
		{"#", "anything", true},
		{"#", "a/b/c", true},

		// Combined
		{"sensors/+/#", "sensors/kitchen/temp", true},
		{"sensors/+/#", "sensors/kitchen/door/state", true},

		// Edge cases
		{"sensors/kitchen", "sensors", false},
		{"sensors", "sensors/kitchen", false},
		{"sensors/#", "other", false},
	}

	for _, tt := range tests {
		t.Run(tt.filter+"→"+tt.topic, func(t *testing.T) {
			got := m.Match(tt.filter, tt.topic)
			if got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.filter, tt.topic, got, tt.want)
			}
		})
	}
}
