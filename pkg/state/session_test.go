package state

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jwebster45206/castle-clerk/pkg/chat"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	gate := NewSession(StageGate, now)
	if gate.History.Capacity() != GateHistorySize {
		t.Errorf("gate history = %d, want %d", gate.History.Capacity(), GateHistorySize)
	}
	if gate.Transcript == nil || gate.Inputs == nil {
		t.Error("transcript and inputs should be initialized")
	}

	ante := NewSession(StageAntechamber, now)
	if ante.History.Capacity() != AntechamberHistorySize {
		t.Errorf("antechamber history = %d, want %d", ante.History.Capacity(), AntechamberHistorySize)
	}
	if gate.ID == ante.ID {
		t.Error("sessions share an ID")
	}
}

func TestStage_Next(t *testing.T) {
	if got := StageGate.Next(); got != StageAntechamber {
		t.Errorf("gate.Next() = %q", got)
	}
	if got := StageAntechamber.Next(); got != "" {
		t.Errorf("antechamber.Next() = %q, want empty", got)
	}
}

func TestSession_Elapsed(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(StageAntechamber, start)

	if got := s.Elapsed(start.Add(30 * time.Second)); got != 30*time.Second {
		t.Errorf("running Elapsed = %v", got)
	}

	s.FinishedAt = start.Add(time.Minute)
	if got := s.Elapsed(start.Add(time.Hour)); got != time.Minute {
		t.Errorf("finished Elapsed = %v, want 1m", got)
	}
}

func TestSession_Brightened(t *testing.T) {
	s := NewSession(StageAntechamber, time.Now())
	s.Attempts = BrightenAfter - 1
	if s.Brightened() {
		t.Error("brightened too early")
	}
	s.Attempts = BrightenAfter
	if !s.Brightened() {
		t.Error("not brightened at threshold")
	}

	g := NewSession(StageGate, time.Now())
	g.Attempts = 100
	if g.Brightened() {
		t.Error("gate never brightens")
	}
}

func TestSession_RememberEvicts(t *testing.T) {
	s := NewSession(StageGate, time.Now())
	for _, line := range []string{"a", "b", "c", "d"} {
		s.Remember(line)
	}
	if s.History.Contains("a") {
		t.Error("oldest entry not evicted")
	}
	if !s.History.Contains("d") {
		t.Error("newest entry missing")
	}
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := NewSession(StageGate, time.Now())
	s.Inputs = append(s.Inputs, "hello")
	s.Transcript.Append(chat.You("hello"))

	snap := s.Snapshot()

	s.Inputs[0] = "changed"
	s.Step = 3
	s.Transcript.Append(chat.Clerk("later"))

	if snap.Inputs[0] != "hello" {
		t.Errorf("snapshot inputs = %v", snap.Inputs)
	}
	if snap.Step != 0 {
		t.Errorf("snapshot step = %d", snap.Step)
	}
	if len(snap.Lines) != 1 {
		t.Errorf("snapshot lines = %d, want 1", len(snap.Lines))
	}
}

func TestSnapshot_FinishedAtOnlyWhenFinished(t *testing.T) {
	s := NewSession(StageAntechamber, time.Now())

	raw, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "finished_at") {
		t.Errorf("unfinished snapshot has finished_at: %s", raw)
	}

	s.FinishedAt = s.StartedAt.Add(time.Minute)
	raw, err = json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"finished_at"`) {
		t.Errorf("finished snapshot lacks finished_at: %s", raw)
	}
}
