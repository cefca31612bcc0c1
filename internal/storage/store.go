package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Store holds the live sessions served by the api.
type Store interface {
	Put(l *Live)
	Get(id uuid.UUID) (*Live, error)
	// Delete stops and removes the session. It reports whether it existed.
	Delete(id uuid.UUID) bool
	Len() int
}

// MemoryStore keeps live sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Live
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID]*Live)}
}

func (m *MemoryStore) Put(l *Live) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[l.ID()] = l
}

func (m *MemoryStore) Get(id uuid.UUID) (*Live, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return l, nil
}

func (m *MemoryStore) Delete(id uuid.UUID) bool {
	m.mu.Lock()
	l, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		l.Stop()
	}
	return ok
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep deletes sessions idle since before cutoff and returns how many
// were removed.
func (m *MemoryStore) Sweep(cutoff time.Time) int {
	m.mu.RLock()
	var stale []uuid.UUID
	for id, l := range m.sessions {
		if l.LastSeen().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	n := 0
	for _, id := range stale {
		if m.Delete(id) {
			n++
		}
	}
	return n
}

// StartSweeper removes sessions idle for longer than ttl, checking every
// interval until ctx is done.
func (m *MemoryStore) StartSweeper(ctx context.Context, interval, ttl time.Duration, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := m.Sweep(now.Add(-ttl)); n > 0 {
					logger.Info("Swept idle sessions", "count", n, "remaining", m.Len())
				}
			}
		}
	}()
}

// StopAll stops every session. Used on shutdown.
func (m *MemoryStore) StopAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[uuid.UUID]*Live)
	m.mu.Unlock()

	for _, l := range all {
		l.Stop()
	}
}
