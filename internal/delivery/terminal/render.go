package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/ysquiz/internal/quiz"
)

func renderHeader(chrome quiz.Chrome, noColor bool) string {
	style := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	if !noColor {
		style = style.Foreground(lipgloss.Color("33"))
	}
	return style.Render(chrome.Title)
}

func renderContent(screen *quiz.Screen, cursor int, noColor bool) string {
	if r := screen.Results(); r != nil {
		return renderResults(*r, noColor)
	}

	q := screen.Question()
	if q == nil {
		return ""
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render(q.Title), ""}
	for i, c := range q.Controls {
		pointer := "  "
		if i == cursor {
			pointer = stylize("> ", noColor, lipgloss.Color("42"))
		}
		lines = append(lines, pointer+controlMark(c.Kind, screen.IsChecked(c.Position))+" "+c.Label)
	}

	if label := screen.AdvanceLabel(); label != "" {
		lines = append(lines, "", stylize("[ "+label+" ]", noColor, lipgloss.Color("39")))
	}

	return strings.Join(lines, "\n")
}

func renderResults(r quiz.Results, noColor bool) string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render("Result:")}
	rows := r.Lines()
	lines = append(lines,
		rows[0],
		stylize(rows[1], noColor, lipgloss.Color("42")),
		stylize(rows[2], noColor, lipgloss.Color("196")),
	)
	return strings.Join(lines, "\n")
}

func renderMessage(msg string, noColor bool) string {
	if msg == "" {
		return ""
	}
	return "\n" + stylize(msg, noColor, lipgloss.Color("220"))
}

func renderHelp(bindings []key.Binding, noColor bool) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return "\n" + stylize(strings.Join(parts, " • "), noColor, lipgloss.Color("242"))
}

func renderError(err error, noColor bool) string {
	return stylize("error: "+err.Error(), noColor, lipgloss.Color("196"))
}

func controlMark(kind quiz.ControlKind, checked bool) string {
	switch {
	case kind == quiz.ControlCheckbox && checked:
		return "[x]"
	case kind == quiz.ControlCheckbox:
		return "[ ]"
	case checked:
		return "(•)"
	default:
		return "( )"
	}
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
