package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/decora/storefront/internal/domain/shared"
)

// RecordingHandler captures every event published on the bus
type RecordingHandler struct {
	mu      sync.Mutex
	handled []shared.DomainEvent
}

// NewRecordingHandler creates an empty recorder
func NewRecordingHandler() *RecordingHandler {
	return &RecordingHandler{}
}

// EventTypes subscribes to everything
func (h *RecordingHandler) EventTypes() []string { return nil }

// Handle records the event
func (h *RecordingHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, ev)
	return nil
}

// Types returns the recorded event types in publication order
func (h *RecordingHandler) Types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	types := make([]string, len(h.handled))
	for i, ev := range h.handled {
		types[i] = ev.EventType()
	}
	return types
}

// Count returns how many events of eventType were recorded
func (h *RecordingHandler) Count(eventType string) int {
	n := 0
	for _, t := range h.Types() {
		if t == eventType {
			n++
		}
	}
	return n
}

// WaitForCondition polls condition until it holds or timeout elapses
func WaitForCondition(condition func() bool, timeout, interval time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(interval)
	}
	return condition()
}
