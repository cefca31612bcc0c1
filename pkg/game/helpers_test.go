package game

import (
	"sync"
	"time"
)

// scriptedRand replays the queued values, then falls back to IntN 0 and a
// Float64 high enough that no pacing roll succeeds.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

type trackedEvent struct {
	name    string
	payload map[string]any
}

type fakeTracker struct {
	mu       sync.Mutex
	events   []trackedEvent
	attempts int
	hints    int
	records  int
}

func (f *fakeTracker) TrackEvent(name string, payload map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, trackedEvent{name, payload})
}

func (f *fakeTracker) Attempt(input string) {
	f.mu.Lock()
	f.attempts++
	f.mu.Unlock()
	f.TrackEvent("user_input", map[string]any{"input": input})
}

func (f *fakeTracker) HintUsed(event string, attempt int) {
	f.mu.Lock()
	f.hints++
	f.mu.Unlock()
	f.TrackEvent(event, map[string]any{"attempt": attempt})
}

func (f *fakeTracker) RecordsViewed() {
	f.mu.Lock()
	f.records++
	f.mu.Unlock()
	f.TrackEvent("records_viewed", nil)
}

func (f *fakeTracker) Complete(event string, now time.Time) {
	f.TrackEvent(event, nil)
}

func (f *fakeTracker) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.name == name {
			n++
		}
	}
	return n
}

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
