package eventlog

import (
	"context"
	"encoding/json"
	"sync"
)

// MemorySink keeps the latest event in a mutex-guarded slot. Default
// backend for single-replica deployments.
type MemorySink struct {
	mu    sync.RWMutex
	event json.RawMessage
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(ctx context.Context, event json.RawMessage) error {
	cp := make(json.RawMessage, len(event))
	copy(cp, event)

	s.mu.Lock()
	s.event = cp
	s.mu.Unlock()
	return nil
}

func (s *MemorySink) Latest(ctx context.Context) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.event == nil {
		return nil, false, nil
	}
	return s.event, true, nil
}
