// Package player is the terminal screen shown while a reading or listening
// session is in progress.
package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/pagetime/internal/session"
	"github.com/ayoisaiah/pagetime/internal/timeutil"
)

const tickInterval = time.Second

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model for a session screen.
type Model struct {
	ctrl     Controller
	onAbort  func()
	lastTick time.Time
	help     help.Model
	styles   styles
	keys     keyMap
	done     bool
}

// Option customises a Model.
type Option func(m *Model)

// WithAbort sets the function called when the user force-quits. It should
// run the same path as an abrupt process exit.
func WithAbort(fn func()) Option {
	return func(m *Model) {
		m.onAbort = fn
	}
}

// WithDarkTheme selects the colour palette.
func WithDarkTheme(dark bool) Option {
	return func(m *Model) {
		m.styles = newStyles(dark)
	}
}

// New returns a Model driven by ctrl.
func New(ctrl Controller, opts ...Option) Model {
	m := Model{
		ctrl:   ctrl,
		help:   help.New(),
		styles: newStyles(true),
		keys:   readingKeys(),
	}

	if ctrl.Status().Listening {
		m.keys = listeningKeys()
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.done {
			return m, nil
		}

		now := time.Time(msg)

		if !m.lastTick.IsZero() {
			m.ctrl.Advance(now.Sub(m.lastTick))
		}

		m.lastTick = now

		return m, tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.abort):
		m.done = true

		if m.onAbort != nil {
			m.onAbort()
		}

		return m, tea.Quit

	case key.Matches(msg, m.keys.end):
		m.done = true
		m.ctrl.End()

		return m, tea.Quit

	case key.Matches(msg, m.keys.toggle):
		m.ctrl.Toggle()

	case key.Matches(msg, m.keys.forward):
		m.ctrl.Forward()

	case key.Matches(msg, m.keys.back):
		m.ctrl.Back()

	case key.Matches(msg, m.keys.next):
		m.ctrl.Next()

	case key.Matches(msg, m.keys.faster):
		m.ctrl.Faster()

	case key.Matches(msg, m.keys.slower):
		m.ctrl.Slower()
	}

	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	st := m.ctrl.Status()

	var s strings.Builder

	s.WriteString(m.styles.title.Render(st.Title))
	s.WriteString(" ")

	switch {
	case !st.Active:
		s.WriteString(m.styles.hint.Render("[Ended]"))
	case st.Running:
		s.WriteString(m.styles.hint.Render("[Tracking]"))
	default:
		s.WriteString(m.styles.paused.Render("[Paused]"))
	}

	s.WriteString("\n\n")
	s.WriteString(m.styles.main.Render(timeutil.Clock(st.Unsent)))
	s.WriteString(m.styles.hint.Render(" unsent"))
	s.WriteString("\n\n")
	s.WriteString(m.styles.secondary.Render(st.Position))

	if st.Listening {
		s.WriteString(m.styles.hint.Render(fmt.Sprintf("  %.2fx", st.Rate)))
	}

	s.WriteString("\n\n")
	s.WriteString(m.help.View(m.keys))

	return m.styles.base.Render(s.String())
}

// formatAudio renders a listening position as a clock, with the file
// number when the audiobook has several.
func formatAudio(a session.Audio) string {
	c := timeutil.Clock(time.Duration(a.OffsetMs) * time.Millisecond)

	if a.Track == session.NoTrack {
		return c
	}

	return fmt.Sprintf("track %d  %s", a.Track+1, c)
}

type styles struct {
	base      lipgloss.Style
	title     lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	paused    lipgloss.Style
}

func newStyles(dark bool) styles {
	main := lipgloss.Color("#B0DB43")
	secondary := lipgloss.Color("#12EAEA")
	hint := lipgloss.Color("#7C7C7C")
	paused := lipgloss.Color("#C492B1")

	if !dark {
		main = lipgloss.Color("#3C7A00")
		secondary = lipgloss.Color("#006D77")
		hint = lipgloss.Color("#5C5C5C")
		paused = lipgloss.Color("#8E3B72")
	}

	return styles{
		base:      lipgloss.NewStyle().Padding(1, 2),
		title:     lipgloss.NewStyle().Bold(true).Foreground(main),
		main:      lipgloss.NewStyle().Bold(true).Foreground(main),
		secondary: lipgloss.NewStyle().Foreground(secondary),
		hint:      lipgloss.NewStyle().Foreground(hint),
		paused:    lipgloss.NewStyle().Foreground(paused),
	}
}
