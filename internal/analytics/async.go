package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultQueueSize    = 256
	defaultWriteTimeout = 2 * time.Second
)

// AsyncSink queues events and writes them to the wrapped sink from a
// background goroutine, so gameplay never waits on the network. When the
// queue is full new events are dropped.
type AsyncSink struct {
	next    Sink
	logger  *slog.Logger
	events  chan Event
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ Sink = (*AsyncSink)(nil)

func NewAsyncSink(next Sink, queueSize int, logger *slog.Logger) *AsyncSink {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &AsyncSink{
		next:    next,
		logger:  logger,
		events:  make(chan Event, queueSize),
		timeout: defaultWriteTimeout,
	}

	s.wg.Add(1)
	go s.run()
	return s
}

// Write enqueues e. It never blocks and never returns an error.
func (s *AsyncSink) Write(_ context.Context, e Event) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}

	select {
	case s.events <- e:
	default:
		s.logger.Warn("Analytics queue full, dropping event", "event", e.Name, "queue_len", len(s.events))
	}
	return nil
}

func (s *AsyncSink) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close drains queued events and closes the wrapped sink.
func (s *AsyncSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.events)
	s.mu.Unlock()

	s.wg.Wait()
	return s.next.Close()
}

func (s *AsyncSink) run() {
	defer s.wg.Done()
	for e := range s.events {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		if err := s.next.Write(ctx, e); err != nil {
			s.logger.Warn("Analytics write failed", "event", e.Name, "error", err)
		}
		cancel()
	}
}
