// Package eventlog is the observation port for processed webhook events.
//
// The pipelines publish each rating event they accept; operators query
// the latest one for debugging webhook wiring. Capacity is one: every
// publish overwrites the previous event. The sink has no correctness
// role in the pipelines themselves.
package eventlog

import (
	"context"
	"encoding/json"
)

// Sink retains the most recently published event.
type Sink interface {
	// Publish records the event, overwriting any previous one.
	Publish(ctx context.Context, event json.RawMessage) error
	// Latest returns the most recent event, or ok=false when nothing
	// has been published yet.
	Latest(ctx context.Context) (json.RawMessage, bool, error)
}
