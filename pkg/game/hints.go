package game

import (
	"time"

	"github.com/jwebster45206/castle-clerk/pkg/chat"
	"github.com/jwebster45206/castle-clerk/pkg/responses"
)

const (
	HintPeriod = 20 * time.Second
	NagPeriod  = 10 * time.Second

	// Hints are never offered before this many attempts.
	hintMinAttempts = 6
	nagEvery        = 5
)

// HintInterval is the attempt modulus for automatic hints. It shrinks as
// the player struggles: every 8 attempts, then 7 from attempt 8, then 6
// from attempt 12.
func HintInterval(attempts int) int {
	switch {
	case attempts >= 12:
		return 6
	case attempts >= 8:
		return 7
	default:
		return 8
	}
}

// HintDue reports whether an automatic hint may fire at this attempt count.
func HintDue(attempts int) bool {
	return attempts >= hintMinAttempts && attempts%HintInterval(attempts) == 0
}

// HintBand returns the hints appropriate to the attempt count: general
// below 10, more specific below 15, and the most specific after that.
func HintBand(attempts int) responses.Pool {
	band := 0
	switch {
	case attempts >= 15:
		band = 2
	case attempts >= 10:
		band = 1
	}
	return responses.Band(responses.Hints, band*responses.HintBandSize, responses.HintBandSize)
}

// HintTick is called every HintPeriod. The first time a hint is due it
// enables hint requests and has the clerk volunteer one. It reports whether
// a line was queued.
func (a *Antechamber) HintTick() bool {
	s := a.session
	if a.writer.Busy() || s.Won || s.HintsEnabled || !HintDue(s.Attempts) {
		return false
	}

	s.HintsEnabled = true
	hint := responses.Choose(a.rng, HintBand(s.Attempts))
	s.Remember(hint)
	a.tracker.HintUsed("hint_given", s.Attempts)
	a.say(chat.Clerk(hint))
	return true
}

// NagTick is called every NagPeriod. While the attempt count sits on a
// multiple of five the clerk suggests giving up.
func (a *Antechamber) NagTick() bool {
	s := a.session
	if a.writer.Busy() || s.Won || s.Attempts == 0 || s.Attempts%nagEvery != 0 {
		return false
	}

	s.Remember(responses.ExitNag)
	a.say(chat.Clerk(responses.ExitNag))
	return true
}
