package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "replace-week",
		Duration: 12 * time.Millisecond,
		Fields:   map[string]any{"week": "2025-06-09", "rows": 3},
	})

	out := buf.String()
	assert.Contains(t, out, "service_use_case")
	assert.Contains(t, out, "use_case=replace-week")
	assert.Contains(t, out, "duration_ms=12")
	assert.Contains(t, out, "rows=3")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "app=timesheet")
	assert.Contains(t, out, "level=INFO")
	assert.Less(t, strings.Index(out, "rows=3"), strings.Index(out, "week=2025-06-09"), "fields are sorted by key")
}

func TestLogUseCaseObserver_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "import-allocations",
		Err:  errors.New("boom"),
	})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
	assert.Contains(t, buf.String(), "success=false")
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
