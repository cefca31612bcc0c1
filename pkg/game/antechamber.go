package game

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/castle-clerk/pkg/chat"
	"github.com/jwebster45206/castle-clerk/pkg/responses"
	"github.com/jwebster45206/castle-clerk/pkg/state"
)

const DefaultPasscode = "PHC-CYBER-2025"

// Antechamber is the stage 2 dispatcher. Input is matched against an
// ordered rule list until the exact passcode is typed.
type Antechamber struct {
	base
	passcode  string
	upper     cases.Caser
	completed bool
}

var _ Dispatcher = (*Antechamber)(nil)

func NewAntechamber(s *state.Session, opts Options) *Antechamber {
	a := &Antechamber{
		base:     newBase(s, opts),
		passcode: DefaultPasscode,
		upper:    cases.Upper(language.Und),
	}
	if opts.Passcode != "" {
		a.passcode = a.upper.String(strings.TrimSpace(opts.Passcode))
	}
	return a
}

// Start opens the stage with the clerk's demand for a key.
func (a *Antechamber) Start() {
	a.tracker.TrackEvent("stage2_started", map[string]any{"timestamp": a.now().UnixMilli()})
	a.say(chat.Clerk(responses.AntechamberOpening))
}

// Submit classifies one line of input. The player line is queued on the
// typewriter followed by the clerk's reply, if any. Entering the passcode
// queues only the player line; the reply comes from CompleteWin.
func (a *Antechamber) Submit(input string) (Outcome, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Outcome{}, ErrEmptyInput
	}
	if a.session.Won {
		return Outcome{}, ErrGameOver
	}
	if a.writer.Busy() {
		return Outcome{}, ErrBusy
	}

	s := a.session
	s.Attempts++
	s.Inputs = append(s.Inputs, raw)
	a.tracker.Attempt(raw)

	out := Outcome{Lines: []chat.Line{chat.You(raw)}}
	text := a.upper.String(raw)

	for _, r := range antechamberRules {
		rep, ok := r.handle(a, text)
		if !ok {
			continue
		}
		out.Rule = r.name
		if rep.win {
			s.Won = true
			s.FinishedAt = a.now()
			out.Won = true
		} else {
			out.Lines = append(out.Lines, chat.Clerk(rep.text))
		}
		break
	}

	a.say(out.Lines...)
	return out, nil
}

// Summary is what the completion dialog shows.
type Summary struct {
	Elapsed   string `json:"elapsed"` // e.g. "1m 5s"
	ShareText string `json:"share_text"`
}

// CompleteWin runs the win sequence once the passcode has been entered.
// city and region come from a best-effort geolocation lookup; when either
// is empty the location sentence is left out.
func (a *Antechamber) CompleteWin(city, region string) (Summary, error) {
	if !a.session.Won {
		return Summary{}, ErrNotWon
	}
	if a.completed {
		return Summary{}, ErrAlreadyCompleted
	}
	a.completed = true

	msg := responses.AccessGranted
	if city != "" && region != "" {
		msg += "\nWe see you are connecting from " + city + ", " + region + "."
	}
	a.say(chat.Clerk(msg))
	a.tracker.Complete("stage2_completed", a.session.FinishedAt)

	elapsed := FormatElapsed(a.session.Elapsed(a.now()))
	return Summary{Elapsed: elapsed, ShareText: ShareText(elapsed)}, nil
}

// Completed reports whether CompleteWin has run.
func (a *Antechamber) Completed() bool {
	return a.completed
}
