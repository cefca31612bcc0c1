package chat

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	SpeakerClerk = "Clerk"
	SpeakerYou   = "You"
)

// Line is a single entry in the transcript. Lines are never modified
// after they are created.
type Line struct {
	Speaker string `json:"speaker"` // "Clerk" or "You"
	Text    string `json:"text"`
}

func Clerk(text string) Line {
	return Line{Speaker: SpeakerClerk, Text: text}
}

func You(text string) Line {
	return Line{Speaker: SpeakerYou, Text: text}
}

// Label is the speaker prefix rendered in front of the text.
func (l Line) Label() string {
	return l.Speaker + ": "
}

func (l Line) String() string {
	return l.Label() + l.Text
}

// Transcript is the ordered, append-only list of lines shown to the player.
type Transcript struct {
	lines []Line
}

func (t *Transcript) Append(l Line) {
	t.lines = append(t.lines, l)
}

// Lines returns a copy of the transcript contents.
func (t *Transcript) Lines() []Line {
	out := make([]Line, len(t.lines))
	copy(out, t.lines)
	return out
}

func (t *Transcript) Len() int {
	return len(t.lines)
}

// Last returns the most recent line, or false when the transcript is empty.
func (t *Transcript) Last() (Line, bool) {
	if len(t.lines) == 0 {
		return Line{}, false
	}
	return t.lines[len(t.lines)-1], true
}

// InputRequest is a line of player input sent to the castle-clerk api.
type InputRequest struct {
	Message string `json:"message"`
}

func (r *InputRequest) Validate() error {
	if r.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

// InputResponse is returned by the api after a submission. Lines holds
// everything the clerk said in reply; it is empty when the input was dropped.
type InputResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Accepted  bool      `json:"accepted"`
	Lines     []Line    `json:"lines,omitempty"`
	Unlocked  bool      `json:"unlocked,omitempty"`
	Won       bool      `json:"won,omitempty"`
}
