package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/castle-clerk/internal/analytics"
	"github.com/jwebster45206/castle-clerk/internal/config"
	"github.com/jwebster45206/castle-clerk/pkg/game"
	"github.com/jwebster45206/castle-clerk/pkg/responses"
)

func newTestUI(t *testing.T) ConsoleUI {
	t.Helper()
	cfg := &config.Config{
		Passcode:   game.DefaultPasscode,
		Stage1Tick: time.Millisecond,
		Stage2Tick: time.Millisecond,
		HintPeriod: time.Hour,
		NagPeriod:  time.Hour,
		GeoTimeout: time.Second,
	}
	m := NewConsoleUI(Deps{
		Config: cfg,
		Sink:   analytics.NopSink{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m ConsoleUI, msg tea.Msg) ConsoleUI {
	t.Helper()
	next, _ := m.Update(msg)
	ui, ok := next.(ConsoleUI)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return ui
}

// drain runs typewriter ticks until the clerk stops talking.
func drain(t *testing.T, m ConsoleUI) ConsoleUI {
	t.Helper()
	for i := 0; m.d.Typewriter().Busy(); i++ {
		if i > 10000 {
			t.Fatal("typewriter never finished")
		}
		m = update(t, m, typeTickMsg{m.gen})
	}
	return update(t, m, typeTickMsg{m.gen})
}

func say(t *testing.T, m ConsoleUI, text string) (ConsoleUI, tea.Cmd) {
	t.Helper()
	m = drain(t, m)
	m.textarea.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(ConsoleUI), cmd
}

func TestConsoleUI_GateGreets(t *testing.T) {
	m := drain(t, newTestUI(t))

	lines := m.session().Transcript.Lines()
	if len(lines) != 1 {
		t.Fatalf("transcript has %d lines, want 1", len(lines))
	}
	if !strings.Contains(m.View(), "THE GATE") {
		t.Error("view does not show the stage title")
	}
}

func TestConsoleUI_EnterIgnoredWhileTyping(t *testing.T) {
	m := newTestUI(t)
	m.textarea.SetValue("hello")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.session().Step != 0 {
		t.Errorf("step = %d, want 0", m.session().Step)
	}
	if m.textarea.Value() != "hello" {
		t.Errorf("textarea was cleared")
	}
}

func TestConsoleUI_PlayThrough(t *testing.T) {
	m := newTestUI(t)

	m = update(t, drain(t, m), tea.KeyMsg{Type: tea.KeyTab})
	if m.ante != nil {
		t.Fatal("took the key before it was offered")
	}

	for i := 0; i < game.GateSteps; i++ {
		m, _ = say(t, m, "let me in")
	}
	m = drain(t, m)
	if !m.session().Unlocked {
		t.Fatal("gate did not unlock")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.ante == nil {
		t.Fatal("Tab did not enter the antechamber")
	}
	m = drain(t, m)
	if got := m.session().Transcript.Lines()[0].Text; got != responses.AntechamberOpening {
		t.Errorf("opening = %q", got)
	}

	m, cmd := say(t, m, "phc-cyber-2025")
	if !m.locating || cmd == nil {
		t.Fatal("win did not start the location lookup")
	}
	m = update(t, m, cmd())
	m = drain(t, m)

	for _, tick := range []tea.Msg{hintTickMsg{m.gen}, nagTickMsg{m.gen}, clockTickMsg{m.gen}} {
		if _, next := m.Update(tick); next != nil {
			t.Errorf("%T rescheduled after the win", tick)
		}
	}

	if !m.showWinModal || m.summary == nil {
		t.Fatal("win dialog not shown")
	}
	if !strings.Contains(m.View(), "Access Granted") {
		t.Error("win dialog not rendered")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.gate == nil || m.showWinModal {
		t.Error("play again did not return to the gate")
	}
}

func TestConsoleUI_CowardsDoor(t *testing.T) {
	m := newTestUI(t)
	for i := 0; i < game.GateSteps; i++ {
		m, _ = say(t, m, "hello")
	}
	m = update(t, drain(t, m), tea.KeyMsg{Type: tea.KeyTab})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.showExitModal {
		t.Fatal("Esc did not open the exit dialog")
	}
	if !strings.Contains(m.View(), m.exitLine) {
		t.Error("exit line not shown")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.showExitModal || m.ante == nil {
		t.Fatal("declining the door should stay in the antechamber")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if m.gate == nil || m.session().Step != 0 {
		t.Error("the door should lead back to a fresh gate")
	}
}

func TestConsoleUI_StaleTimersIgnored(t *testing.T) {
	m := newTestUI(t)
	stale := m.gen - 1
	m = update(t, m, typeTickMsg{stale})
	if _, ok := m.d.Typewriter().Current(); !ok {
		t.Fatal("expected the greeting to still be typing")
	}
	if f, _ := m.d.Typewriter().Current(); f.Revealed != "" {
		t.Errorf("stale tick advanced the typewriter: %q", f.Revealed)
	}
}
