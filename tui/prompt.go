package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jackchuka/nmclean/internal/model"
)

// Prompt asks a yes/no question before removal. Anything but y counts as no.
type Prompt struct {
	in  io.Reader
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

func (p *Prompt) Confirm(ctx context.Context, count int, size int64) (bool, error) {
	m := newConfirmModel(confirmQuestion(count, size))
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, err
	}
	cm, ok := final.(*confirmModel)
	return ok && cm.answer, nil
}

func confirmQuestion(count int, size int64) string {
	noun := "directories"
	if count == 1 {
		noun = "directory"
	}
	return fmt.Sprintf("Remove %d %s (%s)?", count, noun, model.FormatSize(size))
}

type confirmModel struct {
	question string
	answer   bool
	done     bool
}

func newConfirmModel(question string) *confirmModel {
	return &confirmModel{question: question}
}

func (m *confirmModel) Init() tea.Cmd {
	return nil
}

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.answer = true
	case "n", "N", "enter", "esc", "q", "ctrl+c":
		m.answer = false
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m *confirmModel) View() string {
	q := styleDanger.Render("?") + " " + m.question + " " + styleDim.Render("[y/N]") + " "
	if !m.done {
		return q
	}
	if m.answer {
		return q + styleSuccess.Render("yes") + "\n"
	}
	return q + styleDim.Render("no") + "\n"
}
