// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar for the selected recipe
// and an input prompt at the bottom of the terminal. All application
// output is printed above the rendered area via Program.Println / Printf,
// ensuring concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/format"
	"github.com/hammamikhairi/ottocost/internal/pricing"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4e7"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// ── Food cost tiers ──

	tierGoodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86efac"))

	tierWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fcd34d"))

	tierBadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	// ── Output styles (soft palette) ──

	// BannerStyle is muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

// TierStyle returns the colour for a food-cost tier.
func TierStyle(t domain.FoodCostTier) lipgloss.Style {
	switch t {
	case domain.TierGood:
		return tierGoodStyle
	case domain.TierWarning:
		return tierWarningStyle
	default:
		return tierBadStyle
	}
}

// Percent renders a food-cost percentage in its tier colour, or n/a.
func Percent(m domain.Metrics) string {
	if !pricing.Defined(m.FoodCostPercentage) {
		return secondaryStyle.Render(format.Undefined)
	}
	return TierStyle(m.Tier).Render(format.Percent(m.FoodCostPercentage))
}

// ── Status ───────────────────────────────────────────────────────

// Status is what the bar shows about the selected recipe.
type Status struct {
	Recipe   string // empty when nothing is selected
	Baseline domain.Metrics
	Pending  int
	Editing  int // cards across all recipes with staged edits
}

type statusMsg Status

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may
// safely call [UI.Println], [UI.Printf], [UI.SetStatus] and read from
// [UI.InputChan] at any time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI() *UI {
	return &UI{
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// SetStatus replaces what the status bar shows.
func (u *UI) SetStatus(s Status) {
	if u.program != nil && !u.done.Load() {
		u.program.Send(statusMsg(s))
	}
}

// ── Styled print helpers ─────────────────────────────────────────

// PrintInfo prints a conversational line.
func (u *UI) PrintInfo(text string) {
	u.Println(infoStyle.Render("  " + text))
}

// PrintHeading prints a section header.
func (u *UI) PrintHeading(text string) {
	u.Println(headingStyle.Render("  " + text))
}

// PrintBlock prints pre-rendered multi-line output, indented.
func (u *UI) PrintBlock(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		u.Println("  " + line)
	}
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("cost") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Plain-text prompt: styled prompts add ANSI bytes that break
	// textinput's width math for long input.
	ti.Prompt = "cost> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		input:   ti,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string) // prints user input into scrollback
	status  Status
	width   int
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		signalReady(m.readyCh),
		tea.SetWindowTitle("OttoCost"),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Echo from a Cmd so Update never blocks on Println.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		const promptLen = 6 // "cost> "
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case statusMsg:
		m.status = Status(msg)
		return m, tea.SetWindowTitle(m.titleStr())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) titleStr() string {
	if m.status.Recipe == "" {
		return "OttoCost"
	}
	return "OttoCost | " + m.status.Recipe
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderBar())
	b.WriteByte('\n')
	// Blank line before prompt for visual separation.
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(" " + renderStatus(m.status) + " ")
}

// renderStatus lays out the bar's content.
func renderStatus(s Status) string {
	if s.Recipe == "" {
		parts := []string{idleStyle.Render("no recipe selected")}
		if s.Editing > 0 {
			parts = append(parts, pendingStyle.Render(fmt.Sprintf("%d card(s) editing", s.Editing)))
		}
		return strings.Join(parts, sepStyle.Render("  │  "))
	}

	parts := []string{
		valueStyle.Render(s.Recipe),
		labelStyle.Render("cost ") + valueStyle.Render(format.Money(s.Baseline.Cost)),
		labelStyle.Render("food cost ") + Percent(s.Baseline),
	}
	if s.Pending > 0 {
		parts = append(parts, pendingStyle.Render(fmt.Sprintf("%d pending", s.Pending)))
	} else {
		parts = append(parts, idleStyle.Render("no pending changes"))
	}
	return strings.Join(parts, sepStyle.Render("  │  "))
}
