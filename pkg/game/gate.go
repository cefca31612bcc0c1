package game

import (
	"strings"

	"github.com/jwebster45206/castle-clerk/pkg/chat"
	"github.com/jwebster45206/castle-clerk/pkg/responses"
	"github.com/jwebster45206/castle-clerk/pkg/state"
)

// GateSteps is the number of exchanges before the key is offered.
const GateSteps = 3

// Gate is the stage 1 dispatcher. Any three lines of free text open the
// way to the antechamber; after that the clerk only taunts.
type Gate struct {
	base
}

var _ Dispatcher = (*Gate)(nil)

func NewGate(s *state.Session, opts Options) *Gate {
	return &Gate{base: newBase(s, opts)}
}

// Start greets the player.
func (g *Gate) Start() {
	g.tracker.TrackEvent("game_started", map[string]any{"timestamp": g.now().UnixMilli()})
	g.say(chat.Clerk(responses.Choose(g.rng, responses.Greetings)))
}

func (g *Gate) Submit(input string) (Outcome, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Outcome{}, ErrEmptyInput
	}
	if g.writer.Busy() {
		return Outcome{}, ErrBusy
	}

	s := g.session
	g.tracker.Attempt(input)
	s.Inputs = append(s.Inputs, input)
	s.Step++

	out := Outcome{Lines: []chat.Line{chat.You(input)}}
	var reply string
	switch {
	case s.Step == 1:
		out.Rule = "purpose"
		reply = g.pick(responses.PurposeNoted)
	case s.Step == 2:
		out.Rule = "wrong-code"
		reply = g.pick(responses.WrongCode)
	case s.Step == GateSteps:
		out.Rule = "take-the-key"
		reply = responses.TakeTheKey
		s.Unlocked = true
		out.Unlocked = true
		g.tracker.Complete("game_completed", g.now())
	default:
		out.Rule = "taunt"
		reply = g.pick(responses.Taunts)
	}

	out.Lines = append(out.Lines, chat.Clerk(reply))
	g.say(out.Lines...)
	return out, nil
}

// Enter takes the key. It reports the stage the player moves on to.
func (g *Gate) Enter() (state.Stage, error) {
	if !g.session.Unlocked {
		return "", ErrLocked
	}
	g.tracker.TrackEvent("stage2_entered", map[string]any{
		"timeSpent": g.session.Elapsed(g.now()).Milliseconds(),
	})
	return g.session.Stage.Next(), nil
}

// HintTick does nothing at the gate.
func (g *Gate) HintTick() bool { return false }

// NagTick does nothing at the gate.
func (g *Gate) NagTick() bool { return false }
