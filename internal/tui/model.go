// internal/tui/model.go
//
// Pizza – terminal order form.
//
// Context
//   Model is a Bubble Tea program around form.State.  Every keystroke that
//   edits a field is forwarded to the state holder, which decides what
//   errors to show and whether the submit button is enabled.  Submitting is
//   split in two: BeginSubmit runs inside Update so a second key press
//   cannot start another request, and the network call runs as a tea.Cmd
//   whose result message feeds Complete.
//
// Keys
//   tab / shift+tab, up / down   move focus
//   left / right, space          cycle size      s, m, l  pick size
//   space, enter, x              toggle topping
//   enter on Submit, ctrl+s      submit
//   ctrl+r                       clear the form
//   esc, ctrl+c                  quit
//
//   While a submission is in flight only the quit keys are handled.
//
//------------------------------------------------------------------------------

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yanizio/pizzaorder/internal/form"
)

const (
	focusName = iota
	focusSize
	focusFirstTopping
)

// submitResultMsg carries the outcome of one submission.
type submitResultMsg struct {
	confirmation string
	err          error
}

// Model is the order form screen.
type Model struct {
	ctx      context.Context
	def      *form.Definition
	toppings []form.Topping
	state    *form.State
	sender   form.Sender

	name  textinput.Model
	spin  spinner.Model
	focus int
}

// New builds the form screen.  ctx bounds every submission.
func New(ctx context.Context, def *form.Definition, st *form.State, snd form.Sender) Model {
	ti := textinput.New()
	ti.Placeholder = "Full name"
	ti.CharLimit = 64
	ti.Width = 24
	ti.Prompt = ""
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		ctx:      ctx,
		def:      def,
		toppings: st.Catalog().Toppings(),
		state:    st,
		sender:   snd,
		name:     ti,
		spin:     s,
		focus:    focusName,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) submitIndex() int { return focusFirstTopping + len(m.toppings) }

func (m *Model) setFocus(i int) tea.Cmd {
	n := m.submitIndex() + 1
	m.focus = ((i % n) + n) % n
	if m.focus == focusName {
		return m.name.Focus()
	}
	m.name.Blur()
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		m.state.Complete(msg.confirmation, msg.err)
		m.name.SetValue(m.state.Snapshot().Draft.FullName)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Snapshot().Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	}

	// The draft is frozen until the submission completes.
	if m.state.Snapshot().Submitting {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+r":
		if m.state.Reset() {
			m.name.SetValue("")
		}
		return m, m.setFocus(focusName)
	case "tab", "down":
		return m, m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)
	case "ctrl+s":
		return m.submit()
	}

	switch {
	case m.focus == focusName:
		if msg.Type == tea.KeyEnter {
			return m, m.setFocus(focusSize)
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		if v := m.name.Value(); v != m.state.Snapshot().Draft.FullName {
			m.state.SetFullName(v)
		}
		return m, cmd

	case m.focus == focusSize:
		m.handleSizeKey(msg.String())
		return m, nil

	case m.focus < m.submitIndex():
		switch msg.String() {
		case " ", "enter", "x":
			// Catalog ids only; the error path is unreachable here.
			_ = m.state.ToggleTopping(m.toppings[m.focus-focusFirstTopping].ID)
		}
		return m, nil

	default:
		switch msg.String() {
		case "enter", " ":
			return m.submit()
		}
		return m, nil
	}
}

func (m Model) handleSizeKey(key string) {
	cur := m.state.Snapshot().Draft.Size
	switch key {
	case "s", "S":
		m.state.SetSize(form.SizeSmall)
	case "m", "M":
		m.state.SetSize(form.SizeMedium)
	case "l", "L":
		m.state.SetSize(form.SizeLarge)
	case "right", " ":
		m.state.SetSize(cycleSize(cur, +1))
	case "left":
		m.state.SetSize(cycleSize(cur, -1))
	}
}

// cycleSize steps through unset, S, M, and L.
func cycleSize(cur form.Size, step int) form.Size {
	order := append([]form.Size{form.SizeUnset}, form.Sizes...)
	i := 0
	for j, s := range order {
		if s == cur {
			i = j
		}
	}
	n := len(order)
	return order[((i+step)%n+n)%n]
}

// submit starts a submission when the form allows it.  Validation errors
// stay visible on the form; nothing is sent.
func (m Model) submit() (tea.Model, tea.Cmd) {
	d, err := m.state.BeginSubmit()
	if err != nil {
		return m, nil
	}

	ctx, sender := m.ctx, m.sender
	send := func() tea.Msg {
		msg, err := sender.Submit(ctx, d)
		return submitResultMsg{confirmation: msg, err: err}
	}
	return m, tea.Batch(m.spin.Tick, send)
}
