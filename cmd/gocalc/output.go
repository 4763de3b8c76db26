package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandrolain/gocalc/pkg/types"
)

var (
	valueStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	canonicalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	caretStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
)

// formatError describes err for the user. Errors that carry a source
// position get the source line echoed with a caret under the offending spot.
func formatError(source string, err error) string {
	e, ok := types.AsError(err)
	if !ok || e.Position < 0 || e.Position > len(source) {
		return errorStyle.Render("error: " + err.Error())
	}

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("error: %s", e.Message)))
	sb.WriteString("\n  ")
	sb.WriteString(source)
	sb.WriteString("\n  ")
	sb.WriteString(strings.Repeat(" ", caretColumn(source, e.Position)))
	sb.WriteString(caretStyle.Render("^"))
	return sb.String()
}

// caretColumn converts a byte offset into a column, counting tabs as one
// column like every other rune.
func caretColumn(source string, pos int) int {
	return len([]rune(source[:pos]))
}
