package responses

// History is a bounded record of recently emitted lines. It behaves as a
// ring buffer: pushing past capacity evicts the oldest entry.
//
// History is a value type. Push returns the updated history and leaves the
// receiver untouched, so callers can keep the previous value if they need it.
type History struct {
	entries  []string
	capacity int
}

// NewHistory creates an empty history holding at most capacity entries.
// A capacity below one is treated as one.
func NewHistory(capacity int) History {
	if capacity < 1 {
		capacity = 1
	}
	return History{capacity: capacity}
}

func (h History) Capacity() int {
	return h.capacity
}

func (h History) Len() int {
	return len(h.entries)
}

// Contains reports whether s was emitted within the window.
func (h History) Contains(s string) bool {
	for _, e := range h.entries {
		if e == s {
			return true
		}
	}
	return false
}

// Push appends s and evicts from the front until the window fits.
func (h History) Push(s string) History {
	capacity := h.capacity
	if capacity < 1 {
		capacity = 1
	}

	next := make([]string, 0, capacity)
	next = append(next, h.entries...)
	next = append(next, s)
	if len(next) > capacity {
		next = next[len(next)-capacity:]
	}
	return History{entries: next, capacity: capacity}
}

// Entries returns the window contents, oldest first.
func (h History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
