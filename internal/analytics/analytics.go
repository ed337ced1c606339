// Package analytics records product usage events. The recorder is
// constructed explicitly and passed to whatever needs it; there is no
// package-level state.
package analytics

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBufferedEvents bounds the in-memory event buffer.
const maxBufferedEvents = 256

// Event is one recorded usage event.
type Event struct {
	ID        string                 `json:"id"`
	SessionID string                 `json:"sessionId"`
	Name      string                 `json:"name"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Recorder captures events for one application session. Events are emitted
// to the structured log and kept in a bounded buffer for inspection. Safe
// for concurrent use.
type Recorder struct {
	logger    *zap.Logger
	sessionID string

	mu     sync.Mutex
	events []Event
}

// NewRecorder constructs a recorder with a fresh session ID. A nil logger is
// replaced with a no-op logger.
func NewRecorder(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		logger:    logger,
		sessionID: uuid.NewString(),
	}
}

// SessionID returns the identifier shared by all events from this recorder.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Record captures one event.
func (r *Recorder) Record(name string, fields map[string]interface{}) {
	event := Event{
		ID:        uuid.NewString(),
		SessionID: r.sessionID,
		Name:      name,
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}

	r.mu.Lock()
	r.events = append(r.events, event)
	if len(r.events) > maxBufferedEvents {
		r.events = r.events[len(r.events)-maxBufferedEvents:]
	}
	r.mu.Unlock()

	r.logger.Info("analytics event",
		zap.String("op", "analytics.Record"),
		zap.String("event", name),
		zap.String("sessionId", r.sessionID),
		zap.Any("fields", fields),
	)
}

// Events returns a copy of the buffered events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
