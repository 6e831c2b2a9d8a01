package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tallyworks/tally"
	"github.com/tallyworks/tally/audit"
	"github.com/tallyworks/tally/observability"
)

type captureObserver struct {
	events []observability.Event
}

func (c *captureObserver) OnEvent(_ context.Context, event observability.Event) {
	c.events = append(c.events, event)
}

func TestCapture(t *testing.T) {
	ctx := context.Background()
	store := audit.NewMemoryStore()
	observer := &captureObserver{}
	recorder := audit.NewRecorder(store, observer, nil)

	a := tally.Leaf[float64]().Name("a").Value(2).Build()
	b := tally.Leaf[float64]().Name("b").Value(3).Build()
	sum, err := tally.Plus(a, b)
	if err != nil {
		t.Fatalf("Plus error: %v", err)
	}
	wantDoc, err := sum.Render()
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	rec, err := audit.Capture(ctx, recorder, sum)
	if err != nil {
		t.Fatalf("Capture error: %v", err)
	}
	if rec.ID == "" {
		t.Error("Capture should assign a record ID")
	}
	if rec.Label != "(add)" {
		t.Errorf("Label = %q, want %q", rec.Label, "(add)")
	}
	if rec.Document != wantDoc {
		t.Errorf("Document = %s, want %s", rec.Document, wantDoc)
	}
	if rec.Captured.IsZero() {
		t.Error("Capture should stamp the record")
	}

	stored, err := store.Load(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if stored[0].Document != wantDoc {
		t.Errorf("stored document = %s, want %s", stored[0].Document, wantDoc)
	}

	if len(observer.events) != 1 {
		t.Fatalf("Capture emitted %d events, want 1", len(observer.events))
	}
	if observer.events[0].Type != audit.EventCapture {
		t.Errorf("event type = %q, want %q", observer.events[0].Type, audit.EventCapture)
	}
}

func TestCapture_DistinctIDs(t *testing.T) {
	ctx := context.Background()
	recorder := audit.NewRecorder(audit.NewMemoryStore(), nil, nil)
	n := tally.Leaf[int]().Name("n").Value(1).Build()

	first, err := audit.Capture(ctx, recorder, n)
	if err != nil {
		t.Fatalf("Capture error: %v", err)
	}
	second, err := audit.Capture(ctx, recorder, n)
	if err != nil {
		t.Fatalf("Capture error: %v", err)
	}
	if first.ID == second.ID {
		t.Error("consecutive captures should get distinct record IDs")
	}
}

func TestCapture_RenderFailure(t *testing.T) {
	ctx := context.Background()
	store := audit.NewMemoryStore()
	recorder := audit.NewRecorder(store, nil, nil)

	n := tally.Leaf[string]().Name("bad").Value("not a number").Build()
	if _, err := audit.Capture(ctx, recorder, n); err == nil {
		t.Fatal("Capture of unrenderable node should fail")
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(ids) != 0 {
		t.Error("failed capture should store nothing")
	}
}

func TestCaptureViolation(t *testing.T) {
	ctx := context.Background()
	store := audit.NewMemoryStore()
	recorder := audit.NewRecorder(store, nil, nil)

	n := tally.Leaf[int]().Name("n").Value(7).Build()
	_, err := n.
		Validate("must be even", func(v int) bool { return v%2 == 0 }).
		Resolve()

	var violation *tally.Violation
	if !errors.As(err, &violation) {
		t.Fatalf("Resolve() error = %T, want *Violation", err)
	}

	rec, err := audit.CaptureViolation(ctx, recorder, violation)
	if err != nil {
		t.Fatalf("CaptureViolation error: %v", err)
	}
	if rec.Label != "n" {
		t.Errorf("Label = %q, want %q", rec.Label, "n")
	}
	if rec.Document != violation.Document {
		t.Errorf("Document = %s, want %s", rec.Document, violation.Document)
	}
}

func TestNewRecorderFromConfig(t *testing.T) {
	recorder, err := audit.NewRecorderFromConfig(&audit.Config{})
	if err != nil {
		t.Fatalf("NewRecorderFromConfig error: %v", err)
	}
	if recorder == nil {
		t.Fatal("default config should yield a recorder")
	}

	if _, err := audit.NewRecorderFromConfig(&audit.Config{Store: "nope"}); err == nil {
		t.Error("unknown store name should fail")
	}
	if _, err := audit.NewRecorderFromConfig(&audit.Config{Observer: "nope"}); err == nil {
		t.Error("unknown observer name should fail")
	}

	recorder, err = audit.NewRecorderFromConfig(&audit.Config{Path: t.TempDir(), Observer: "noop"})
	if err != nil {
		t.Fatalf("NewRecorderFromConfig(file) error: %v", err)
	}
	n := tally.Leaf[int]().Name("n").Value(1).Build()
	if _, err := audit.Capture(context.Background(), recorder, n); err != nil {
		t.Errorf("Capture via file-backed recorder error: %v", err)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := audit.DefaultConfig()
	cfg.Merge(&audit.Config{Path: "/tmp/audit", Observer: "slog"})
	cfg.Merge(&audit.Config{SinkURL: "http://localhost:8080"})

	if cfg.Path != "/tmp/audit" || cfg.Observer != "slog" || cfg.SinkURL != "http://localhost:8080" {
		t.Errorf("Merge result = %+v", cfg)
	}

	// Zero values never overwrite.
	cfg.Merge(&audit.Config{})
	if cfg.Path != "/tmp/audit" {
		t.Errorf("Merge with zero source overwrote Path: %q", cfg.Path)
	}
}
