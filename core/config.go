package core

import (
	"fmt"
	"strconv"
)

// PingreqProperty is the broker configuration key gating PINGREQ
// notifications. Absent means enabled; any value strconv.ParseBool rejects
// fails construction instead of silently defaulting.
const PingreqProperty = "intercept.pingreq"

// defaultQueueSize bounds the task queue when Config.QueueSize is zero.
const defaultQueueSize = 1024

// Config carries the dispatcher's construction-time settings. The zero value
// is valid: default queue size, all notifications enabled.
type Config struct {
	// QueueSize bounds the task queue. Zero selects the default (1024);
	// negative is a construction error. Producers enqueueing into a full
	// queue block until the actor catches up — tasks are never dropped
	// before shutdown.
	QueueSize int

	// Props holds raw broker configuration properties, read once at
	// construction. Only PingreqProperty is consulted.
	Props map[string]string
}

// interceptPing resolves the PINGREQ gate from Props.
func (c Config) interceptPing() (bool, error) {
	v, ok := c.Props[PingreqProperty]
	if !ok {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("intercept: invalid %s value %q: %w", PingreqProperty, v, err)
	}
	return b, nil
}
