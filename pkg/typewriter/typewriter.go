// Package typewriter reveals transcript lines one character at a time.
//
// A Typewriter has no clock of its own. The owner calls Tick at a fixed
// interval (a tea.Tick in the console, a time.Ticker in the api), which keeps
// the animation deterministic under test.
package typewriter

import (
	"time"

	"github.com/jwebster45206/castle-clerk/pkg/chat"
)

const (
	GateInterval        = 35 * time.Millisecond
	AntechamberInterval = 30 * time.Millisecond
)

// Frame is the visible state of the line being typed.
type Frame struct {
	Line     chat.Line // the full line
	Revealed string    // prefix of Line.Text shown so far
	Done     bool      // the line finished on this tick and was committed
}

// Typewriter queues lines and commits each to the transcript once it has
// been fully revealed.
type Typewriter struct {
	transcript *chat.Transcript
	queue      []chat.Line
	current    []rune
	line       chat.Line
	shown      int
	active     bool
}

func New(transcript *chat.Transcript) *Typewriter {
	return &Typewriter{transcript: transcript}
}

// Enqueue schedules lines for typing after anything already queued.
func (tw *Typewriter) Enqueue(lines ...chat.Line) {
	tw.queue = append(tw.queue, lines...)
	if !tw.active {
		tw.next()
	}
}

// Busy reports whether a line is being typed or waiting to be typed.
// Input is disabled while Busy is true.
func (tw *Typewriter) Busy() bool {
	return tw.active
}

// Current returns the in-flight frame. ok is false when idle.
func (tw *Typewriter) Current() (Frame, bool) {
	if !tw.active {
		return Frame{}, false
	}
	return Frame{Line: tw.line, Revealed: string(tw.current[:tw.shown])}, true
}

// Pending is the number of lines queued behind the current one.
func (tw *Typewriter) Pending() int {
	return len(tw.queue)
}

// Tick reveals one more character. When the current line completes it is
// appended to the transcript, the returned frame has Done set, and the next
// queued line becomes current. ok is false when there was nothing to type.
func (tw *Typewriter) Tick() (Frame, bool) {
	if !tw.active {
		return Frame{}, false
	}

	if tw.shown < len(tw.current) {
		tw.shown++
	}
	frame := Frame{Line: tw.line, Revealed: string(tw.current[:tw.shown])}

	if tw.shown >= len(tw.current) {
		tw.transcript.Append(tw.line)
		frame.Done = true
		tw.active = false
		tw.next()
	}
	return frame, true
}

// Flush completes every queued line immediately and returns them in order.
func (tw *Typewriter) Flush() []chat.Line {
	var done []chat.Line
	for tw.active {
		frame, _ := tw.Tick()
		if frame.Done {
			done = append(done, frame.Line)
		}
	}
	return done
}

func (tw *Typewriter) next() {
	if len(tw.queue) == 0 {
		return
	}
	tw.line = tw.queue[0]
	tw.queue = tw.queue[1:]
	tw.current = []rune(tw.line.Text)
	tw.shown = 0
	tw.active = true
}
