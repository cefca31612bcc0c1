package analytics

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	mu       sync.Mutex
	events   []Event
	writeErr error
	closed   bool
}

func (c *captureSink) Write(ctx context.Context, e Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return c.writeErr
}

func (c *captureSink) Ping(ctx context.Context) error { return nil }

func (c *captureSink) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *captureSink) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, e := range c.events {
		out = append(out, e.Name)
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRecorderCounters(t *testing.T) {
	sink := &captureSink{}
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRecorder(sink, "session-1", start)

	r.Attempt("PHC-CYBER-2025 please")
	r.Attempt("hint")
	r.HintUsed("hint_requested", 2)
	r.RecordsViewed()
	r.Complete("stage2_completed", start.Add(90*time.Second))

	c := r.Counters()
	assert.Equal(t, 2, c.Attempts)
	assert.Equal(t, 1, c.HintsUsed)
	assert.Equal(t, 1, c.RecordsViewed)
	assert.Equal(t, 90*time.Second, c.CompletionTime)

	assert.Equal(t, []string{"user_input", "user_input", "hint_requested", "records_viewed", "stage2_completed"}, sink.names())

	first := sink.events[0]
	assert.Equal(t, "session-1", first.SessionID)
	assert.Equal(t, "PHC-CYBER-...", first.Payload["input"])
	assert.Equal(t, 1, first.Payload["attempt"])

	last := sink.events[len(sink.events)-1]
	assert.Equal(t, int64(90000), last.Payload["completionTime"])
	assert.Equal(t, 1, last.Payload["recordsViewed"])
}

func TestRecorderIgnoresSinkErrors(t *testing.T) {
	sink := &captureSink{writeErr: errors.New("down")}
	r := NewRecorder(sink, "s", time.Now())

	assert.NotPanics(t, func() { r.Attempt("x") })
	assert.Equal(t, 1, r.Counters().Attempts)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.TrackEvent("game_started", nil)
		r.Attempt("x")
		r.HintUsed("hint_given", 6)
		r.RecordsViewed()
		r.Complete("game_completed", time.Now())
	})
	assert.Equal(t, Counters{}, r.Counters())
}

func TestPreviewIsRuneSafe(t *testing.T) {
	assert.Equal(t, "short...", preview("short"))
	assert.Equal(t, "éééééééééé...", preview("éééééééééééé"))
}

func TestAsyncSinkDrainsOnClose(t *testing.T) {
	next := &captureSink{}
	s := NewAsyncSink(next, 16, testLogger())

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Write(context.Background(), Event{Name: "user_input"}))
	}
	require.NoError(t, s.Close())

	assert.Len(t, next.names(), 5)
	assert.True(t, next.closed)

	// writes after close are dropped, not panics
	assert.NoError(t, s.Write(context.Background(), Event{Name: "late"}))
	assert.NoError(t, s.Close())
}

func setupRedisSink(t *testing.T) (*RedisSink, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	sink, err := NewRedisSink(context.Background(), "redis://"+mr.Addr(), testLogger())
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis sink: %v", err)
	}
	return sink, mr
}

func TestRedisSink_WriteAndRead(t *testing.T) {
	sink, mr := setupRedisSink(t)
	defer mr.Close()
	defer sink.Close()

	ctx := context.Background()
	require.NoError(t, sink.Ping(ctx))

	events := []Event{
		{Name: "stage2_started", SessionID: "a", At: time.Now().UTC()},
		{Name: "user_input", SessionID: "a", Payload: map[string]any{"attempt": 1}},
		{Name: "user_input", SessionID: "a", Payload: map[string]any{"attempt": 2}},
	}
	for _, e := range events {
		require.NoError(t, sink.Write(ctx, e))
	}

	totals, err := sink.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals["stage2_started"])
	assert.Equal(t, int64(2), totals["user_input"])

	recent, err := sink.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "user_input", recent[0].Name)
	// JSON numbers decode as float64
	assert.Equal(t, float64(2), recent[1].Payload["attempt"])

	for _, n := range []int64{0, -3} {
		none, err := sink.Recent(ctx, n)
		require.NoError(t, err)
		assert.Empty(t, none, "Recent(%d)", n)
	}
}

func TestRedisSink_PingFailsWhenServerGone(t *testing.T) {
	sink, mr := setupRedisSink(t)
	defer sink.Close()

	mr.Close()
	assert.Error(t, sink.Ping(context.Background()))
}

func TestNewRedisSink_BadURL(t *testing.T) {
	_, err := NewRedisSink(context.Background(), "not a url", testLogger())
	assert.Error(t, err)
}
