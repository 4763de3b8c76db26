package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/printer"
)

// maxHistory bounds the number of evaluated lines kept on screen.
const maxHistory = 20

// ReplCmd runs the interactive prompt. When stdin is not a terminal it
// behaves like the stream command.
type ReplCmd struct{}

func (c *ReplCmd) Run(ctx context.Context, g *Globals) error {
	ev := g.Evaluator()
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return (&StreamCmd{}).run(ctx, ev, os.Stdin, os.Stdout)
	}

	_, err := tea.NewProgram(newReplModel(ctx, ev), tea.WithContext(ctx)).Run()
	return err
}

// replEntry is one evaluated line.
type replEntry struct {
	source    string
	value     int64
	canonical string
	err       error
}

func (e replEntry) String() string {
	if e.err != nil {
		return formatError(e.source, e.err)
	}
	return fmt.Sprintf("%s %s\n%s", promptStyle.Render(">"), canonicalStyle.Render(e.canonical),
		valueStyle.Render(fmt.Sprint(e.value)))
}

// evalLine evaluates one line of user input.
func evalLine(ctx context.Context, ev *evaluator.Evaluator, line string) replEntry {
	entry := replEntry{source: line}
	expr, err := ev.Compile(line)
	if err != nil {
		entry.err = err
		return entry
	}
	entry.canonical = printer.Render(expr.AST())
	entry.value, entry.err = ev.Eval(ctx, expr)
	return entry
}

type replModel struct {
	ctx     context.Context
	ev      *evaluator.Evaluator
	input   textinput.Model
	history []replEntry
}

func newReplModel(ctx context.Context, ev *evaluator.Evaluator) replModel {
	ti := textinput.New()
	ti.Placeholder = "10 + ((51+9)-(-17-3)) + 1"
	ti.Prompt = promptStyle.Render("> ")
	ti.CharLimit = 4096
	ti.Focus()

	return replModel{ctx: ctx, ev: ev, input: ti}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			m.history = append(m.history, evalLine(m.ctx, m.ev, line))
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) View() string {
	var sb strings.Builder
	for _, e := range m.history {
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(canonicalStyle.Render("enter: evaluate • esc: quit"))
	sb.WriteString("\n")
	return sb.String()
}
