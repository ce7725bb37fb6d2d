package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		t.Fatal("no use-case events recorded")
	}
	return r.events[len(r.events)-1]
}

func TestLogUseCaseObserver_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "generate-planning",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"date": "2026-10-12"},
	})

	out := buf.String()
	assert.Contains(t, out, "use_case=generate-planning")
	assert.Contains(t, out, "duration_ms=12")
	assert.Contains(t, out, "date=2026-10-12")
	assert.Contains(t, out, "level=INFO")
}

func TestLogUseCaseObserver_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "assign", Err: errors.New("shift is at capacity")})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "component=service")
	assert.Contains(t, out, `error="shift is at capacity"`)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
