package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yanizio/pizzaorder/internal/form"
)

var (
	colorAccent  = lipgloss.Color("#3498db")
	colorError   = lipgloss.Color("#e74c3c")
	colorSuccess = lipgloss.Color("#2ecc71")
	colorMuted   = lipgloss.Color("#7f8c8d")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e056fd"))
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Background(colorAccent).Foreground(lipgloss.Color("#ffffff"))
	disabledBtn  = lipgloss.NewStyle().Padding(0, 2).Background(colorMuted).Foreground(lipgloss.Color("#dddddd"))
)

func (m Model) cursor(i int) string {
	if m.focus == i {
		return focusStyle.Render("›") + " "
	}
	return "  "
}

func (m Model) View() string {
	snap := m.state.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.def.Title))
	b.WriteString("\n")

	switch {
	case snap.Result.Success != "":
		b.WriteString(successStyle.Render(snap.Result.Success) + "\n\n")
	case snap.Result.Failure != "":
		b.WriteString(errorStyle.Render(snap.Result.Failure) + "\n\n")
	}

	// Full name
	b.WriteString(m.cursor(focusName) + labelStyle.Render("Full Name") + "  " + m.name.View() + "\n")
	if msg := snap.Errors[form.FieldFullName]; msg != "" {
		b.WriteString("    " + errorStyle.Render(msg) + "\n")
	}

	// Size
	size := mutedStyle.Render("-- Choose Size --")
	if snap.Draft.Size != form.SizeUnset {
		size = m.def.SizeLabel(snap.Draft.Size)
	}
	b.WriteString(m.cursor(focusSize) + labelStyle.Render("Size") + "       ‹ " + size + " ›\n")
	if msg := snap.Errors[form.FieldSize]; msg != "" {
		b.WriteString("    " + errorStyle.Render(msg) + "\n")
	}

	// Toppings
	b.WriteString("\n  " + labelStyle.Render("Toppings:") + "\n")
	for i, t := range m.toppings {
		box := "[ ]"
		if snap.Draft.HasTopping(t.ID) {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", m.cursor(focusFirstTopping+i), box, t.Label))
	}
	if msg := snap.Errors[form.FieldToppings]; msg != "" {
		b.WriteString("    " + errorStyle.Render(msg) + "\n")
	}
	if msg := snap.Errors[""]; msg != "" {
		b.WriteString("    " + errorStyle.Render(msg) + "\n")
	}

	// Submit
	b.WriteString("\n" + m.cursor(m.submitIndex()))
	switch {
	case snap.Submitting:
		b.WriteString(disabledBtn.Render("Submit") + " " + m.spin.View() + " placing order…")
	case snap.CanSubmit:
		b.WriteString(buttonStyle.Render("Submit"))
	default:
		b.WriteString(disabledBtn.Render("Submit"))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("tab move • ←/→ size • space toggle • ctrl+s submit • ctrl+r clear • esc quit"))
	b.WriteString("\n")
	return b.String()
}
