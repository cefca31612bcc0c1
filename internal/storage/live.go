package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/castle-clerk/internal/analytics"
	"github.com/jwebster45206/castle-clerk/internal/geo"
	"github.com/jwebster45206/castle-clerk/pkg/game"
	"github.com/jwebster45206/castle-clerk/pkg/state"
	"github.com/jwebster45206/castle-clerk/pkg/typewriter"
)

// ErrWrongStage is returned for an operation the session's stage does not
// support, such as entering from the antechamber.
var ErrWrongStage = errors.New("operation not available at this stage")

const subscriberBuffer = 256

// Timing controls how fast a live session runs.
type Timing struct {
	Tick       time.Duration // typewriter step
	HintPeriod time.Duration
	NagPeriod  time.Duration
}

// Live is a dispatcher being played over the api. All access to the
// dispatcher goes through the mutex; a background loop steps the
// typewriter and fires the hint and nag timers.
type Live struct {
	mu       sync.Mutex
	d        game.Dispatcher
	recorder *analytics.Recorder
	timing   Timing
	summary  *game.Summary
	lastSeen time.Time
	subs     map[chan typewriter.Frame]struct{}

	// ambientStopped is set once the hint and nag timers end after a win.
	ambientStopped bool

	id        uuid.UUID
	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func NewLive(d game.Dispatcher, recorder *analytics.Recorder, timing Timing) *Live {
	return &Live{
		d:        d,
		recorder: recorder,
		timing:   timing,
		lastSeen: time.Now(),
		subs:     make(map[chan typewriter.Frame]struct{}),
		id:       d.Session().ID,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (l *Live) ID() uuid.UUID {
	return l.id
}

// Start queues the opening line and begins the run loop.
func (l *Live) Start() {
	l.startOnce.Do(func() {
		l.mu.Lock()
		l.d.Start()
		l.mu.Unlock()
		go l.run()
	})
}

// Stop ends the run loop and closes all subscriptions. It is safe to call
// more than once, and before Start.
func (l *Live) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
		started := true
		l.startOnce.Do(func() { started = false })
		if started {
			<-l.done
		}

		l.mu.Lock()
		for ch := range l.subs {
			close(ch)
			delete(l.subs, ch)
		}
		l.mu.Unlock()
	})
}

func (l *Live) run() {
	defer close(l.done)

	tw := time.NewTicker(l.timing.Tick)
	defer tw.Stop()
	hint := time.NewTicker(l.timing.HintPeriod)
	defer hint.Stop()
	nag := time.NewTicker(l.timing.NagPeriod)
	defer nag.Stop()

	// A nil channel never fires; the hint and nag timers end with the game.
	hintC, nagC := hint.C, nag.C
	for {
		var won bool
		select {
		case <-l.stop:
			return
		case <-tw.C:
			won = l.step()
		case <-hintC:
			won = l.ambient(l.d.HintTick)
		case <-nagC:
			won = l.ambient(l.d.NagTick)
		}
		if won && hintC != nil {
			hint.Stop()
			nag.Stop()
			hintC, nagC = nil, nil
			l.mu.Lock()
			l.ambientStopped = true
			l.mu.Unlock()
		}
	}
}

// ambient fires one hint or nag check and reports whether the game is won.
func (l *Live) ambient(fire func() bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	fire()
	return l.d.Session().Won
}

// step advances the typewriter by one rune, fans the frame out and reports
// whether the game is won.
func (l *Live) step() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	won := l.d.Session().Won
	f, ok := l.d.Typewriter().Tick()
	if !ok {
		return won
	}
	for ch := range l.subs {
		select {
		case ch <- f:
		default:
			// Slow readers miss frames; the next snapshot catches them up.
		}
	}
	return won
}

// Subscribe returns a channel of typewriter frames and a func that ends
// the subscription.
func (l *Live) Subscribe() (<-chan typewriter.Frame, func()) {
	ch := make(chan typewriter.Frame, subscriberBuffer)

	l.mu.Lock()
	select {
	case <-l.stop:
		close(ch)
	default:
		l.subs[ch] = struct{}{}
	}
	l.mu.Unlock()

	return ch, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.subs[ch]; ok {
			delete(l.subs, ch)
			close(ch)
		}
	}
}

// Submit passes one line of input to the dispatcher.
func (l *Live) Submit(input string) (game.Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSeen = time.Now()
	return l.d.Submit(input)
}

// Enter takes the key at the gate and reports the next stage.
func (l *Live) Enter() (state.Stage, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSeen = time.Now()

	gate, ok := l.d.(*game.Gate)
	if !ok {
		return "", ErrWrongStage
	}
	return gate.Enter()
}

// CompleteWin runs the win sequence. The location lookup happens without
// holding the session lock so the typewriter keeps running meanwhile.
func (l *Live) CompleteWin(ctx context.Context, locator geo.Locator, logger *slog.Logger) (game.Summary, error) {
	l.mu.Lock()
	a, ok := l.d.(*game.Antechamber)
	won := ok && a.Session().Won
	l.mu.Unlock()

	if !ok {
		return game.Summary{}, ErrWrongStage
	}
	if !won {
		return game.Summary{}, game.ErrNotWon
	}

	var city, region string
	if locator != nil {
		if loc := geo.BestEffort(ctx, locator, logger); loc != nil {
			city, region = loc.City, loc.Region
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	sum, err := a.CompleteWin(city, region)
	if err != nil {
		return game.Summary{}, err
	}
	l.summary = &sum
	return sum, nil
}

// View is the api representation of a live session.
type View struct {
	state.Snapshot
	Typing     *typewriter.Frame `json:"typing,omitempty"`
	Brightened bool              `json:"brightened"`
	Clock      string            `json:"clock,omitempty"`
	Summary    *game.Summary     `json:"summary,omitempty"`
}

func (l *Live) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.d.Session()
	v := View{
		Snapshot:   s.Snapshot(),
		Brightened: s.Brightened(),
		Summary:    l.summary,
	}
	if f, ok := l.d.Typewriter().Current(); ok {
		v.Typing = &f
	}
	if s.Stage == state.StageAntechamber {
		v.Clock = game.FormatClock(s.Elapsed(time.Now()))
	}
	return v
}

// Counters returns the analytics counters of this play-through.
func (l *Live) Counters() analytics.Counters {
	return l.recorder.Counters()
}

// LastSeen is when the player last acted on the session.
func (l *Live) LastSeen() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSeen
}
