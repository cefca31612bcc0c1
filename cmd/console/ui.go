package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/castle-clerk/internal/analytics"
	"github.com/jwebster45206/castle-clerk/internal/config"
	"github.com/jwebster45206/castle-clerk/internal/geo"
	"github.com/jwebster45206/castle-clerk/internal/share"
	"github.com/jwebster45206/castle-clerk/pkg/chat"
	"github.com/jwebster45206/castle-clerk/pkg/game"
	"github.com/jwebster45206/castle-clerk/pkg/state"
)

const PlaceHolderText = "Speak to the clerk..."

// Deps are the services the console plays against.
type Deps struct {
	Config  *config.Config
	Sink    analytics.Sink
	Locator geo.Locator
	Share   *share.Clipboard
	Logger  *slog.Logger
}

// ConsoleUI is the BubbleTea model that runs the game.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	deps Deps

	d    game.Dispatcher
	gate *game.Gate        // set at the gate
	ante *game.Antechamber // set in the antechamber
	gen  int               // bumped per stage so stale timers are ignored

	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int

	locating bool
	summary  *game.Summary
	shareMsg string

	showQuitModal bool
	showExitModal bool
	exitLine      string
	showWinModal  bool
}

type typeTickMsg struct{ gen int }
type hintTickMsg struct{ gen int }
type nagTickMsg struct{ gen int }
type clockTickMsg struct{ gen int }

type locatedMsg struct {
	gen int
	loc *geo.Location
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	clerkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	dimTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	brightTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var (
	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	brightSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")) // yellow
)

func NewConsoleUI(deps Deps) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	m := ConsoleUI{
		deps:         deps,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
	m.enterStage(state.StageGate)
	return m
}

// enterStage replaces the dispatcher with a fresh one for stage. The
// returned command starts that stage's timers.
func (m *ConsoleUI) enterStage(stage state.Stage) tea.Cmd {
	now := time.Now()
	s := state.NewSession(stage, now)
	rec := analytics.NewRecorder(m.deps.Sink, s.ID.String(), now)
	opts := game.Options{Tracker: rec, Passcode: m.deps.Config.Passcode}

	m.gen++
	m.gate, m.ante = nil, nil
	m.summary = nil
	m.shareMsg = ""
	m.locating = false

	if stage == state.StageAntechamber {
		m.ante = game.NewAntechamber(s, opts)
		m.d = m.ante
	} else {
		m.gate = game.NewGate(s, opts)
		m.d = m.gate
	}
	m.d.Start()
	m.deps.Logger.Info("Stage started", "stage", stage, "session_id", s.ID)

	cmds := []tea.Cmd{m.typeTick()}
	if stage == state.StageAntechamber {
		cmds = append(cmds,
			tickEvery(m.deps.Config.HintPeriod, hintTickMsg{m.gen}),
			tickEvery(m.deps.Config.NagPeriod, nagTickMsg{m.gen}),
			tickEvery(time.Second, clockTickMsg{m.gen}))
	}
	return tea.Batch(cmds...)
}

func (m ConsoleUI) typeTick() tea.Cmd {
	interval := m.deps.Config.Stage1Tick
	if m.ante != nil {
		interval = m.deps.Config.Stage2Tick
	}
	return tickEvery(interval, typeTickMsg{m.gen})
}

func tickEvery(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (m ConsoleUI) session() *state.Session {
	return m.d.Session()
}

func (m ConsoleUI) stageTitle() string {
	if m.ante != nil {
		return "THE ANTECHAMBER"
	}
	return "THE GATE"
}

func (m ConsoleUI) writeMetadata() string {
	s := m.session()
	var content strings.Builder
	content.WriteString(titleStyle.Render(m.stageTitle()) + "\n\n")

	content.WriteString("Visitor:\n")
	content.WriteString(s.ID.String()[:8] + "...\n\n")

	if m.ante != nil {
		content.WriteString("Time:\n")
		content.WriteString(game.FormatClock(s.Elapsed(time.Now())) + "\n\n")
		content.WriteString("Attempts:\n")
		content.WriteString(fmt.Sprintf("%d\n\n", s.Attempts))
		content.WriteString("Hints:\n")
		if s.HintsEnabled {
			content.WriteString("available\n\n")
		} else {
			content.WriteString("withheld\n\n")
		}
	} else {
		content.WriteString("Exchanges:\n")
		content.WriteString(fmt.Sprintf("%d\n\n", s.Step))
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Speak\n")
	if m.gate != nil && s.Unlocked {
		content.WriteString(loadingStyle.Render("• Tab: Take the key") + "\n")
	}
	if m.ante != nil {
		content.WriteString("• Esc: The door\n")
	} else {
		content.WriteString("• Esc: Quit\n")
	}
	content.WriteString("• Ctrl+C: Quit\n")

	return content.String()
}

// formatLine renders one transcript line with its speaker label.
func formatLine(line chat.Line, text string, width int, body lipgloss.Style) string {
	label := userStyle.Render(line.Label())
	if line.Speaker == chat.SpeakerClerk {
		label = clerkStyle.Render(line.Label())
	}
	wrapWidth := width - lipgloss.Width(line.Label())
	if wrapWidth < 10 {
		wrapWidth = 10
	}
	return label + body.Render(wordwrap.String(text, wrapWidth))
}

// writeChatContent rebuilds the transcript, including the line being typed.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	s := m.session()

	body := dimTextStyle
	sep := separatorStyle
	if s.Brightened() {
		body = brightTextStyle
		sep = brightSeparatorStyle
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(game.ShareTitle)) + "\n\n")
	content.WriteString(m.stageTitle() + "\n\n")
	content.WriteString(sep.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	for _, line := range s.Transcript.Lines() {
		content.WriteString(formatLine(line, line.Text, chatWidth, body) + "\n\n")
	}
	if f, ok := m.d.Typewriter().Current(); ok {
		content.WriteString(formatLine(f.Line, f.Revealed, chatWidth, body) + "\n\n")
	}
	if m.locating {
		content.WriteString(loadingStyle.Render("The clerk consults the ledger...") + "\n\n")
	}
	if m.gate != nil && s.Unlocked && !m.d.Typewriter().Busy() {
		content.WriteString(loadingStyle.Render("[Press Tab to take the key]") + "\n\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) refresh() {
	if !m.ready {
		return
	}
	m.writeChatContent()
	m.metaViewport.SetContent(m.writeMetadata())
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 6
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.typeTick())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Timers keep running under the modals.
	switch msg := msg.(type) {
	case typeTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if _, ok := m.d.Typewriter().Tick(); ok {
			m.refresh()
		}
		m.checkWin()
		return m, m.typeTick()

	case hintTickMsg:
		if msg.gen != m.gen || m.session().Won {
			return m, nil
		}
		if m.d.HintTick() {
			m.refresh()
		}
		return m, tickEvery(m.deps.Config.HintPeriod, hintTickMsg{m.gen})

	case nagTickMsg:
		if msg.gen != m.gen || m.session().Won {
			return m, nil
		}
		if m.d.NagTick() {
			m.refresh()
		}
		return m, tickEvery(m.deps.Config.NagPeriod, nagTickMsg{m.gen})

	case clockTickMsg:
		if msg.gen != m.gen || m.session().Won {
			return m, nil
		}
		m.refresh()
		return m, tickEvery(time.Second, clockTickMsg{m.gen})

	case locatedMsg:
		if msg.gen != m.gen || m.ante == nil {
			return m, nil
		}
		m.locating = false
		var city, region string
		if msg.loc != nil {
			city, region = msg.loc.City, msg.loc.Region
		}
		sum, err := m.ante.CompleteWin(city, region)
		if err != nil {
			m.deps.Logger.Error("Win sequence failed", "error", err)
			return m, nil
		}
		m.summary = &sum
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showExitModal {
		return m.updateExitModal(msg)
	}
	if m.showWinModal {
		return m.updateWinModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		return m, vpCmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEsc:
			if m.ante != nil && !m.session().Won {
				m.exitLine = game.ExitLine(nil)
				m.showExitModal = true
			} else {
				m.showQuitModal = true
			}
			return m, nil
		case tea.KeyTab:
			return m.takeKey()
		case tea.KeyEnter:
			return m.submit()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	out, err := m.d.Submit(input)
	switch {
	case errors.Is(err, game.ErrBusy):
		// The clerk is still talking; the line is not accepted.
		return m, nil
	case err != nil:
		m.deps.Logger.Debug("Input rejected", "error", err)
		return m, nil
	}

	m.textarea.Reset()
	m.deps.Logger.Debug("Input handled", "rule", out.Rule)

	var cmd tea.Cmd
	if out.Won {
		m.locating = true
		cmd = m.locate()
	}
	m.refresh()
	return m, cmd
}

// takeKey moves from the gate into the antechamber.
func (m ConsoleUI) takeKey() (tea.Model, tea.Cmd) {
	if m.gate == nil || m.d.Typewriter().Busy() {
		return m, nil
	}
	next, err := m.gate.Enter()
	if err != nil {
		return m, nil
	}
	cmd := m.enterStage(next)
	m.refresh()
	return m, cmd
}

// locate runs the geolocation lookup off the update loop.
func (m ConsoleUI) locate() tea.Cmd {
	gen := m.gen
	locator := m.deps.Locator
	logger := m.deps.Logger
	timeout := m.deps.Config.GeoTimeout
	return func() tea.Msg {
		if locator == nil {
			return locatedMsg{gen: gen}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return locatedMsg{gen: gen, loc: geo.BestEffort(ctx, locator, logger)}
	}
}

// checkWin opens the win dialog once the final line has been typed.
func (m *ConsoleUI) checkWin() {
	if m.summary == nil || m.showWinModal || m.d.Typewriter().Busy() {
		return
	}
	m.showWinModal = true
	m.textarea.Blur()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if !m.showWinModal {
					m.textarea.Focus()
					return m, textarea.Blink
				}
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) updateExitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.leave()
		case tea.KeyEsc:
			m.showExitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m.leave()
			case "n", "N":
				m.showExitModal = false
				return m, nil
			}
		}
	}
	return m, nil
}

// leave walks out through the door, back to the gate.
func (m ConsoleUI) leave() (tea.Model, tea.Cmd) {
	m.showExitModal = false
	cmd := m.enterStage(state.StageGate)
	m.refresh()
	return m, cmd
}

func (m ConsoleUI) updateWinModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		switch msg.String() {
		case "s", "S":
			m.shareMsg = m.copyShare()
		case "r", "R":
			m.showWinModal = false
			cmd := m.enterStage(state.StageGate)
			m.textarea.Focus()
			m.refresh()
			return m, tea.Batch(cmd, textarea.Blink)
		case "q", "Q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConsoleUI) copyShare() string {
	text := share.Message(game.ShareTitle, m.summary.ShareText, m.deps.Config.ShareURL)
	if m.deps.Share == nil {
		return text
	}
	if err := m.deps.Share.Copy(text); err != nil {
		m.deps.Logger.Warn("Clipboard unavailable", "error", err)
		return text
	}
	return "Copied to clipboard."
}

func (m ConsoleUI) renderModal(title, body, prompt string) string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(wordwrap.String(body, 50))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render(prompt))

	modal := modalStyle.Width(56).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	switch {
	case m.showQuitModal:
		return m.renderModal("Quit Game?",
			"Are you sure you want to leave the castle?",
			"Press Y to quit, N to continue, or Ctrl+C to force quit")
	case m.showExitModal:
		return m.renderModal("The Coward's Door",
			m.exitLine,
			"Press Y to walk back to the gate, N to stay")
	case m.showWinModal && m.summary != nil:
		body := fmt.Sprintf("You made it through in %s.\n\n%s", m.summary.Elapsed, m.summary.ShareText)
		if m.shareMsg != "" {
			body += "\n\n" + loadingStyle.Render(m.shareMsg)
		}
		return m.renderModal("Access Granted",
			body,
			"S to share, R to play again, Q to quit")
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	sep := separatorStyle
	if m.session().Brightened() {
		sep = brightSeparatorStyle
	}

	input := m.textarea.View()
	if m.d.Typewriter().Busy() {
		input = promptStyle.Render("   the clerk is speaking...")
	}

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			sep.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			input,
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// fatalView is shown when the program cannot continue.
func fatalView(err error) string {
	return errorStyle.Render("The castle encountered an unexpected error") + "\n" + promptStyle.Render(err.Error()) + "\n"
}
