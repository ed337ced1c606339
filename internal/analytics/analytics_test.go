package analytics

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestNewRecorderSessionID(t *testing.T) {
	recorder := NewRecorder(nil)

	if _, err := uuid.Parse(recorder.SessionID()); err != nil {
		t.Errorf("SessionID() = %q, not a valid UUID: %v", recorder.SessionID(), err)
	}

	other := NewRecorder(nil)
	if recorder.SessionID() == other.SessionID() {
		t.Error("two recorders share a session ID")
	}
}

func TestRecord(t *testing.T) {
	recorder := NewRecorder(nil)
	recorder.Record("plan_started", map[string]interface{}{"template": "saas"})
	recorder.Record("plan_computed", nil)

	events := recorder.Events()
	if len(events) != 2 {
		t.Fatalf("len(Events()) = %d, want 2", len(events))
	}

	first := events[0]
	if first.Name != "plan_started" {
		t.Errorf("events[0].Name = %q, want plan_started", first.Name)
	}
	if first.SessionID != recorder.SessionID() {
		t.Errorf("events[0].SessionID = %q, want %q", first.SessionID, recorder.SessionID())
	}
	if first.Fields["template"] != "saas" {
		t.Errorf("events[0].Fields = %v, want template=saas", first.Fields)
	}
	if first.ID == events[1].ID {
		t.Error("events share an ID")
	}
	if first.Timestamp.IsZero() {
		t.Error("events[0].Timestamp is zero")
	}
}

func TestEventsReturnsCopy(t *testing.T) {
	recorder := NewRecorder(nil)
	recorder.Record("plan_started", nil)

	events := recorder.Events()
	events[0].Name = "tampered"

	if recorder.Events()[0].Name != "plan_started" {
		t.Error("mutating the returned slice changed the recorder's buffer")
	}
}

func TestRecordBoundsBuffer(t *testing.T) {
	recorder := NewRecorder(nil)
	total := maxBufferedEvents + 10
	for i := 0; i < total; i++ {
		recorder.Record(fmt.Sprintf("event_%d", i), nil)
	}

	events := recorder.Events()
	if len(events) != maxBufferedEvents {
		t.Fatalf("len(Events()) = %d, want %d", len(events), maxBufferedEvents)
	}
	if got, want := events[0].Name, fmt.Sprintf("event_%d", total-maxBufferedEvents); got != want {
		t.Errorf("oldest retained event = %q, want %q (earliest events dropped first)", got, want)
	}
}

func TestRecordConcurrent(t *testing.T) {
	recorder := NewRecorder(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				recorder.Record("plan_step", nil)
				recorder.Events()
			}
		}()
	}
	wg.Wait()

	if len(recorder.Events()) != 160 {
		t.Errorf("len(Events()) = %d, want 160", len(recorder.Events()))
	}
}
