package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/tallyworks/tally"
	"github.com/tallyworks/tally/observability"
)

// Event types emitted by the recorder.
const (
	EventCapture   observability.EventType = "audit.capture"
	EventShip      observability.EventType = "audit.ship"
	EventShipError observability.EventType = "audit.ship.error"
)

const eventSource = "audit.recorder"

// Recorder captures rendered provenance documents into a Store and, when a
// Sink is configured, ships each record to the remote ingestion endpoint.
// Every capture and ship is reported through the observer.
type Recorder struct {
	store    Store
	observer observability.Observer
	sink     *Sink
}

// NewRecorder creates a Recorder. A nil observer defaults to NoOpObserver;
// a nil sink disables shipping.
func NewRecorder(store Store, observer observability.Observer, sink *Sink) *Recorder {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	return &Recorder{store: store, observer: observer, sink: sink}
}

// Capture renders the node and records its provenance document under a
// fresh record ID. Rendering failures propagate unrecorded.
func Capture[T any](ctx context.Context, r *Recorder, n tally.Node[T]) (Record, error) {
	doc, err := n.Render()
	if err != nil {
		return Record{}, err
	}
	return r.record(ctx, n.Name(), doc)
}

// CaptureViolation records a resolved validation failure, preserving the
// document the violation was resolved against.
func CaptureViolation(ctx context.Context, r *Recorder, v *tally.Violation) (Record, error) {
	return r.record(ctx, v.Label, v.Document)
}

func (r *Recorder) record(ctx context.Context, label, doc string) (Record, error) {
	rec := Record{
		ID:       newRecordID(),
		Label:    label,
		Document: doc,
		Captured: time.Now().UTC(),
	}

	if err := r.store.Save(ctx, rec); err != nil {
		return Record{}, err
	}
	observability.Emit(ctx, r.observer, EventCapture, observability.LevelInfo, eventSource,
		map[string]any{"id": rec.ID, "label": label})

	if r.sink != nil {
		if err := r.sink.Ship(ctx, rec); err != nil {
			observability.Emit(ctx, r.observer, EventShipError, observability.LevelError, eventSource,
				map[string]any{"id": rec.ID, "error": err.Error()})
			return rec, fmt.Errorf("ship record %s: %w", rec.ID, err)
		}
		observability.Emit(ctx, r.observer, EventShip, observability.LevelInfo, eventSource,
			map[string]any{"id": rec.ID})
	}

	return rec, nil
}
