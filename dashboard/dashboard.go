// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package dashboard runs the machine without a window and shows what it is
// doing in the terminal.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"picovga/logger"
	"picovga/session"
)

// Interval is the time between simulation steps.
const Interval = 50 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("8"))
	onStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	offStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model implements the tea.Model interface.
type Model struct {
	session *session.Session

	// system clocks simulated per step
	StepsPerTick int

	message string
	err     error
}

// New is the preferred method of initialisation for the Model type.
func New(s *session.Session) Model {
	return Model{
		session:      s,
		StepsPerTick: s.Machine.TicksPerFrame(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var code byte
		switch msg.Type {
		case tea.KeyEsc:
			code = session.KeyEscape
		case tea.KeyCtrlC:
			code = session.KeyInterrupt
		case tea.KeyRunes:
			if len(msg.Runes) == 1 && msg.Runes[0] < 0x80 {
				code = byte(msg.Runes[0])
			}
		}
		if code == 0 {
			return m, nil
		}

		err := m.session.Key(code)
		if errors.Is(err, session.Quit) {
			return m, tea.Quit
		}
		m.err = err
		if err != nil {
			logger.Log("dashboard", err.Error())
			m.message = ""
		} else if code == session.KeySnapshot || code == session.KeySnapshot-'a'+'A' {
			m.message = fmt.Sprintf("saved %s", m.session.Status().LastSnapshot)
		}
		return m, nil

	case tickMsg:
		m.err = m.session.Step(context.Background(), m.StepsPerTick)
		return m, tick()
	}
	return m, nil
}

func (m Model) row(label string, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func (m Model) View() string {
	st := m.session.Status()

	var b strings.Builder
	b.WriteString(titleStyle.Render("picovga 640x480"))
	b.WriteString("\n\n")

	state := offStyle.Render("stopped")
	if st.Running {
		state = onStyle.Render("running")
	}
	b.WriteString(m.row("output", state))
	b.WriteString(m.row("profile", fmt.Sprintf("%s, %d MHz", st.Profile, st.Clock/1_000_000)))
	b.WriteString(m.row("ticks", fmt.Sprintf("%d", st.Ticks)))
	b.WriteString(m.row("frames", fmt.Sprintf("%d", st.Display.Frames)))
	b.WriteString(m.row("lines", fmt.Sprintf("%d", st.Display.Lines)))
	b.WriteString(m.row("pixels", fmt.Sprintf("%d", st.Display.Pixels)))
	b.WriteString(m.row("line period", fmt.Sprintf("%d ticks", st.Display.LineTicks)))
	b.WriteString(m.row("frame period", fmt.Sprintf("%d ticks", st.Display.FrameTicks)))
	b.WriteString(m.row("dma words", fmt.Sprintf("%d", st.Transfers)))
	b.WriteString(m.row("dma frames", fmt.Sprintf("%d", st.Completions)))
	b.WriteString(m.row("underruns", fmt.Sprintf("%d", st.Underruns)))

	if m.message != "" {
		b.WriteString("\n" + m.message + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + offStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("s start/stop  p snapshot  q quit"))
	return boxStyle.Render(b.String()) + "\n"
}

// Run shows the dashboard until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return errors.Wrap(err, "dashboard")
}
