package state

import (
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/castle-clerk/pkg/chat"
	"github.com/jwebster45206/castle-clerk/pkg/responses"
)

// Stage identifies which room of the castle a session is playing.
type Stage string

const (
	StageGate        Stage = "gate"        // stage 1
	StageAntechamber Stage = "antechamber" // stage 2
)

// Next returns the stage reached by taking the key, or "" at the end.
func (s Stage) Next() Stage {
	if s == StageGate {
		return StageAntechamber
	}
	return ""
}

const (
	GateHistorySize        = 3
	AntechamberHistorySize = 4

	// BrightenAfter is the attempt count at which the antechamber chat area
	// brightens.
	BrightenAfter = 5
)

// Session is the mutable state of one play-through of one stage. It is
// owned by a single dispatcher and is never shared between stages.
type Session struct {
	ID            uuid.UUID         `json:"id"`
	Stage         Stage             `json:"stage"`
	Step          int               `json:"step"`     // gate exchanges completed
	Attempts      int               `json:"attempts"` // antechamber submissions
	HintsEnabled  bool              `json:"hints_enabled"`
	InLoop        bool              `json:"in_loop"`
	LoopIntensity int               `json:"loop_intensity"`
	Unlocked      bool              `json:"unlocked"`
	Won           bool              `json:"won"`
	StartedAt     time.Time         `json:"started_at"`
	FinishedAt    time.Time         `json:"finished_at,omitzero"`
	Inputs        []string          `json:"inputs,omitempty"` // raw player input, in order
	History       responses.History `json:"-"`
	Transcript    *chat.Transcript  `json:"-"`
}

func NewSession(stage Stage, now time.Time) *Session {
	size := GateHistorySize
	if stage == StageAntechamber {
		size = AntechamberHistorySize
	}
	return &Session{
		ID:         uuid.New(),
		Stage:      stage,
		StartedAt:  now,
		History:    responses.NewHistory(size),
		Transcript: &chat.Transcript{},
		Inputs:     make([]string, 0),
	}
}

// Remember pushes s into the recent-history window.
func (s *Session) Remember(line string) {
	s.History = s.History.Push(line)
}

// Elapsed is the play time so far, or the final time once the session is won.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if !s.FinishedAt.IsZero() {
		return s.FinishedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}

func (s *Session) Brightened() bool {
	return s.Stage == StageAntechamber && s.Attempts >= BrightenAfter
}

// Snapshot is the read-only view of a session served by the api.
// It is a copy and stays valid after the session changes.
type Snapshot struct {
	Session
	Lines []chat.Line `json:"lines"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{Session: *s}
	snap.Inputs = append([]string(nil), s.Inputs...)
	if s.Transcript != nil {
		snap.Lines = s.Transcript.Lines()
	}
	return snap
}
