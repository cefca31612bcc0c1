package analytics

import (
	"context"
	"sync"
	"time"
)

const inputPreviewLen = 10

// Recorder keeps the counters for one play-through and forwards events to
// a sink. A nil *Recorder is valid and records nothing.
type Recorder struct {
	sink      Sink
	sessionID string
	now       func() time.Time

	mu       sync.Mutex
	counters Counters
}

func NewRecorder(sink Sink, sessionID string, start time.Time) *Recorder {
	if sink == nil {
		sink = NopSink{}
	}
	return &Recorder{
		sink:      sink,
		sessionID: sessionID,
		now:       time.Now,
		counters:  Counters{StartTime: start},
	}
}

// TrackEvent sends a named event. Sink errors are ignored; sinks that talk
// to the network should be wrapped in an AsyncSink.
func (r *Recorder) TrackEvent(name string, payload map[string]any) {
	if r == nil {
		return
	}
	_ = r.sink.Write(context.Background(), Event{
		Name:      name,
		SessionID: r.sessionID,
		Payload:   payload,
		At:        r.now(),
	})
}

// Attempt counts one player submission and emits user_input with a short
// preview of what was typed.
func (r *Recorder) Attempt(input string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.counters.Attempts++
	n := r.counters.Attempts
	r.mu.Unlock()

	r.TrackEvent("user_input", map[string]any{
		"attempt": n,
		"input":   preview(input),
	})
}

// HintUsed counts a hint and emits event ("hint_given" or "hint_requested").
func (r *Recorder) HintUsed(event string, attempt int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.counters.HintsUsed++
	n := r.counters.HintsUsed
	r.mu.Unlock()

	r.TrackEvent(event, map[string]any{
		"hintNumber": n,
		"attempt":    attempt,
	})
}

func (r *Recorder) RecordsViewed() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.counters.RecordsViewed++
	n := r.counters.RecordsViewed
	r.mu.Unlock()

	r.TrackEvent("records_viewed", map[string]any{"count": n})
}

// Complete stores the completion time and emits event with the totals.
func (r *Recorder) Complete(event string, now time.Time) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.counters.CompletionTime = now.Sub(r.counters.StartTime)
	c := r.counters
	r.mu.Unlock()

	r.TrackEvent(event, map[string]any{
		"completionTime": c.CompletionTime.Milliseconds(),
		"attempts":       c.Attempts,
		"hintsUsed":      c.HintsUsed,
		"recordsViewed":  c.RecordsViewed,
	})
}

func (r *Recorder) Counters() Counters {
	if r == nil {
		return Counters{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters
}

func preview(input string) string {
	runes := []rune(input)
	if len(runes) > inputPreviewLen {
		runes = runes[:inputPreviewLen]
	}
	return string(runes) + "..."
}
