package analytics

import (
	"time"
)

// Event is a single analytics record.
type Event struct {
	Name      string         `json:"name"`
	SessionID string         `json:"session_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	At        time.Time      `json:"at"`
}

// Counters are the running totals kept for a play-through.
type Counters struct {
	Attempts       int           `json:"attempts"`
	HintsUsed      int           `json:"hints_used"`
	RecordsViewed  int           `json:"records_viewed"`
	StartTime      time.Time     `json:"start_time"`
	CompletionTime time.Duration `json:"completion_time,omitempty"`
}
