// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package dashboard_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"picovga/dashboard"
	"picovga/hardware/clocks"
	"picovga/session"
	"picovga/test"
	"picovga/vga"
)

func newModel(t *testing.T) dashboard.Model {
	t.Helper()
	m := vga.NewMachine(clocks.Standard)
	test.DemandSuccess(t, m.Boot())
	d := dashboard.New(session.New(m, "", 1))
	d.StepsPerTick = 10_000
	return d
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView(t *testing.T) {
	m := newModel(t)
	v := m.View()
	test.ExpectEquality(t, strings.Contains(v, "stopped"), true)
	test.ExpectEquality(t, strings.Contains(v, "standard, 125 MHz"), true)
}

func TestStartStop(t *testing.T) {
	m := newModel(t)

	model, cmd := m.Update(runes("s"))
	test.ExpectEquality(t, cmd == nil, true)
	m = model.(dashboard.Model)
	test.ExpectEquality(t, strings.Contains(m.View(), "running"), true)

	// other messages are ignored
	model, cmd = m.Update(time.Now())
	m = model.(dashboard.Model)
	test.ExpectEquality(t, cmd == nil, true)

	// ticks step the machine and ask for another tick
	model, cmd = m.Update(m.Init()())
	m = model.(dashboard.Model)
	test.ExpectEquality(t, cmd != nil, true)
	test.ExpectEquality(t, strings.Contains(m.View(), "10000"), true)

	model, _ = m.Update(runes("s"))
	m = model.(dashboard.Model)
	test.ExpectEquality(t, strings.Contains(m.View(), "stopped"), true)
}

func TestQuit(t *testing.T) {
	m := newModel(t)

	_, cmd := m.Update(runes("q"))
	test.DemandEquality(t, cmd != nil, true)
	test.ExpectEquality(t, cmd(), tea.Msg(tea.Quit()))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	test.DemandEquality(t, cmd != nil, true)

	// a snapshot without a file name is reported, not fatal
	model, cmd := m.Update(runes("p"))
	test.ExpectEquality(t, cmd == nil, true)
	test.ExpectEquality(t, strings.Contains(model.View(), "no file name"), true)
}
