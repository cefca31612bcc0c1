package game

import (
	"errors"
	"testing"
	"time"

	"github.com/jwebster45206/castle-clerk/pkg/chat"
	"github.com/jwebster45206/castle-clerk/pkg/responses"
	"github.com/jwebster45206/castle-clerk/pkg/state"
)

func newTestGate(t *testing.T) (*Gate, *fakeTracker, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	tracker := &fakeTracker{}
	s := state.NewSession(state.StageGate, clock.Now())
	g := NewGate(s, Options{Rand: &scriptedRand{}, Now: clock.Now, Tracker: tracker})
	return g, tracker, clock
}

func submitGate(t *testing.T, g *Gate, input string) Outcome {
	t.Helper()
	g.Typewriter().Flush()
	out, err := g.Submit(input)
	if err != nil {
		t.Fatalf("Submit(%q) error = %v", input, err)
	}
	g.Typewriter().Flush()
	return out
}

func TestGate_StartGreets(t *testing.T) {
	g, tracker, _ := newTestGate(t)
	g.Start()

	if !g.Typewriter().Busy() {
		t.Fatal("typewriter idle after Start")
	}
	lines := g.Typewriter().Flush()
	if len(lines) != 1 || lines[0] != chat.Clerk(responses.Greetings[0]) {
		t.Errorf("greeting = %+v, want %q", lines, responses.Greetings[0])
	}
	if tracker.count("game_started") != 1 {
		t.Error("game_started not tracked")
	}
}

func TestGate_DropsInputWhileTyping(t *testing.T) {
	g, tracker, _ := newTestGate(t)
	g.Start()

	_, err := g.Submit("hello")
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("Submit() error = %v, want ErrBusy", err)
	}

	s := g.Session()
	if s.Step != 0 || len(s.Inputs) != 0 {
		t.Errorf("session mutated: step %d, inputs %v", s.Step, s.Inputs)
	}
	if s.Transcript.Len() != 0 {
		t.Errorf("transcript len = %d, want 0", s.Transcript.Len())
	}
	if g.Typewriter().Pending() != 0 {
		t.Errorf("dropped input was queued")
	}
	if tracker.attempts != 0 {
		t.Errorf("dropped input was tracked")
	}
}

func TestGate_RejectsEmptyInput(t *testing.T) {
	g, _, _ := newTestGate(t)
	if _, err := g.Submit("   "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Submit(blank) error = %v, want ErrEmptyInput", err)
	}
}

func TestGate_UnlocksExactlyOnceAfterThreeLines(t *testing.T) {
	g, tracker, _ := newTestGate(t)
	g.Start()

	wantRules := []string{"purpose", "wrong-code", "take-the-key", "taunt", "taunt", "taunt"}
	unlocks := 0
	for i, want := range wantRules {
		out := submitGate(t, g, "line")
		if out.Rule != want {
			t.Errorf("submission %d rule = %q, want %q", i+1, out.Rule, want)
		}
		if out.Unlocked {
			unlocks++
			if i != GateSteps-1 {
				t.Errorf("unlocked on submission %d, want %d", i+1, GateSteps)
			}
		}
		if out.Lines[0] != chat.You("line") {
			t.Errorf("submission %d first line = %+v", i+1, out.Lines[0])
		}
	}

	if unlocks != 1 {
		t.Errorf("unlocks = %d, want 1", unlocks)
	}
	if tracker.count("game_completed") != 1 {
		t.Errorf("game_completed tracked %d times", tracker.count("game_completed"))
	}
	if s := g.Session(); s.Step != len(wantRules) || !s.Unlocked {
		t.Errorf("session step %d unlocked %v", s.Step, s.Unlocked)
	}
}

func TestGate_TakeTheKeyLine(t *testing.T) {
	g, _, _ := newTestGate(t)
	submitGate(t, g, "one")
	submitGate(t, g, "two")
	out := submitGate(t, g, "three")

	if got := out.Lines[1].Text; got != responses.TakeTheKey {
		t.Errorf("third reply = %q, want %q", got, responses.TakeTheKey)
	}
}

func TestGate_TauntsDoNotRepeatWithinWindow(t *testing.T) {
	g, _, _ := newTestGate(t)
	for i := 0; i < GateSteps; i++ {
		submitGate(t, g, "warm up")
	}

	// scriptedRand always takes the first fresh entry, so a repeat would
	// only be possible if history were ignored.
	var taunts []string
	for i := 0; i < 12; i++ {
		out := submitGate(t, g, "still here")
		taunts = append(taunts, out.Lines[1].Text)
	}
	for i := range taunts {
		for j := i + 1; j < len(taunts) && j <= i+state.GateHistorySize; j++ {
			if taunts[i] == taunts[j] {
				t.Fatalf("taunt %q repeated at %d and %d", taunts[i], i, j)
			}
		}
	}
}

func TestGate_Enter(t *testing.T) {
	g, tracker, clock := newTestGate(t)

	if _, err := g.Enter(); !errors.Is(err, ErrLocked) {
		t.Fatalf("Enter() before unlock error = %v, want ErrLocked", err)
	}

	for i := 0; i < GateSteps; i++ {
		submitGate(t, g, "let me in")
	}
	clock.Advance(42 * time.Second)

	next, err := g.Enter()
	if err != nil {
		t.Fatalf("Enter() error = %v", err)
	}
	if next != state.StageAntechamber {
		t.Errorf("Enter() = %q, want %q", next, state.StageAntechamber)
	}
	if tracker.count("stage2_entered") != 1 {
		t.Error("stage2_entered not tracked")
	}
	last := tracker.events[len(tracker.events)-1]
	if last.payload["timeSpent"] != int64(42000) {
		t.Errorf("timeSpent = %v, want 42000", last.payload["timeSpent"])
	}
}

func TestGate_TimersAreInert(t *testing.T) {
	g, _, _ := newTestGate(t)
	if g.HintTick() || g.NagTick() {
		t.Error("gate timers emitted a line")
	}
}
