// Package game holds the two castle dispatchers: the Gate (stage 1) and the
// Antechamber (stage 2).
//
// A dispatcher owns one state.Session and one typewriter.Typewriter. It is not
// safe for concurrent use; the owner serializes Submit, the timer ticks and
// typewriter ticks (the console does this on the bubbletea update loop, the
// api with a per-session mutex).
package game

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/jwebster45206/castle-clerk/pkg/chat"
	"github.com/jwebster45206/castle-clerk/pkg/responses"
	"github.com/jwebster45206/castle-clerk/pkg/state"
	"github.com/jwebster45206/castle-clerk/pkg/typewriter"
)

var (
	// ErrBusy means input arrived while the typewriter was still running.
	// The input is dropped, not queued.
	ErrBusy = errors.New("clerk is still speaking")
	// ErrEmptyInput means the submission was blank after trimming.
	ErrEmptyInput = errors.New("input is empty")
	// ErrGameOver means the session has already been won.
	ErrGameOver = errors.New("game is over")
	// ErrLocked means the gate has not been unlocked yet.
	ErrLocked = errors.New("the way forward is locked")
	// ErrNotWon means CompleteWin was called before the passcode was entered.
	ErrNotWon = errors.New("passcode has not been entered")
	// ErrAlreadyCompleted means the win sequence has already run.
	ErrAlreadyCompleted = errors.New("win sequence already completed")
)

// Tracker receives gameplay analytics. *analytics.Recorder implements it.
type Tracker interface {
	TrackEvent(name string, payload map[string]any)
	Attempt(input string)
	HintUsed(event string, attempt int)
	RecordsViewed()
	Complete(event string, now time.Time)
}

// Options configures a dispatcher. Zero values fall back to defaults.
type Options struct {
	Rand     responses.Rand
	Now      func() time.Time
	Tracker  Tracker
	Passcode string // antechamber only
}

// Outcome describes what a submission did.
type Outcome struct {
	Rule     string      // rule that produced the reply
	Lines    []chat.Line // lines queued on the typewriter, player line first
	Unlocked bool        // the gate opened on this submission
	Won      bool        // the passcode was entered on this submission
}

// Dispatcher is the behaviour shared by both stages.
type Dispatcher interface {
	Session() *state.Session
	Typewriter() *typewriter.Typewriter
	Start()
	Submit(input string) (Outcome, error)
	HintTick() bool
	NagTick() bool
}

// globalRand adapts the math/rand/v2 top-level functions.
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

type nopTracker struct{}

func (nopTracker) TrackEvent(string, map[string]any) {}
func (nopTracker) Attempt(string)                    {}
func (nopTracker) HintUsed(string, int)              {}
func (nopTracker) RecordsViewed()                    {}
func (nopTracker) Complete(string, time.Time)        {}

// base carries what both dispatchers share.
type base struct {
	session *state.Session
	writer  *typewriter.Typewriter
	rng     responses.Rand
	now     func() time.Time
	tracker Tracker
}

func newBase(s *state.Session, opts Options) base {
	b := base{
		session: s,
		rng:     opts.Rand,
		now:     opts.Now,
		tracker: opts.Tracker,
	}
	if b.rng == nil {
		b.rng = globalRand{}
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.tracker == nil {
		b.tracker = nopTracker{}
	}
	if s.Transcript == nil {
		s.Transcript = &chat.Transcript{}
	}
	b.writer = typewriter.New(s.Transcript)
	return b
}

func (b *base) Session() *state.Session {
	return b.session
}

func (b *base) Typewriter() *typewriter.Typewriter {
	return b.writer
}

// pick draws from pool avoiding the session's recent history.
func (b *base) pick(pool responses.Pool) string {
	var line string
	line, b.session.History = responses.Pick(b.rng, pool, b.session.History)
	return line
}

func (b *base) say(lines ...chat.Line) {
	b.writer.Enqueue(lines...)
}
