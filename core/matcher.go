package core

import "strings"

// TopicMatcher decides whether a topic filter covers a concrete topic name.
// The dispatcher itself filters by message kind only; export handlers use a
// matcher to narrow which published topics they care about.
type TopicMatcher interface {
	Match(filter string, topic string) bool
}

// MQTTMatcher implements MQTT topic-filter matching: levels separated by
// '/', '+' matching exactly one level, and a trailing '#' matching the
// remaining levels (including none).
//
// Examples:
//
//	"sensors/kitchen/temp" matches "sensors/kitchen/temp"  (exact)
//	"sensors/+/temp"       matches "sensors/kitchen/temp"
//	"sensors/+/temp"       does NOT match "sensors/kitchen/door/temp"
//	"sensors/#"            matches "sensors/kitchen/temp"
//	"sensors/#"            matches "sensors"
type MQTTMatcher struct{}

func (MQTTMatcher) Match(filter, topic string) bool {
	filterParts := strings.Split(filter, "/")
	topicParts := strings.Split(topic, "/")

	fi, ti := 0, 0
	for fi < len(filterParts) {
		switch filterParts[fi] {
		case "#":
			// Valid only as the last level; covers the parent level too,
			// so "sensors/#" matches "sensors".
			return fi == len(filterParts)-1
		case "+":
			if ti >= len(topicParts) {
				return false
			}
			fi++
			ti++
		default:
			if ti >= len(topicParts) || filterParts[fi] != topicParts[ti] {
				return false
			}
			fi++
			ti++
		}
	}

	// Both must be fully consumed
	return ti == len(topicParts)
}
