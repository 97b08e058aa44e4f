package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jackchuka/nmclean/internal/model"
)

// DefaultPageSize is the number of rows the picker shows at once.
const DefaultPageSize = 15

// Picker is the interactive checklist used to choose which directories to
// remove. Unused entries start out checked. Cancelling returns an empty
// selection, not an error.
type Picker struct {
	in       io.Reader
	out      io.Writer
	PageSize int
}

func NewPicker(in io.Reader, out io.Writer) *Picker {
	return &Picker{in: in, out: out, PageSize: DefaultPageSize}
}

func (p *Picker) Select(ctx context.Context, targets []model.Target) ([]model.Target, error) {
	m := newPickerModel(targets, p.PageSize)
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	pm, ok := final.(*pickerModel)
	if !ok || pm.cancelled {
		return nil, nil
	}
	return pm.selected(), nil
}

type pickerModel struct {
	targets  []model.Target
	checked  []bool
	cursor   int
	offset   int
	pageSize int
	width    int

	keys      keyMap
	done      bool
	cancelled bool
}

func newPickerModel(targets []model.Target, pageSize int) *pickerModel {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	checked := make([]bool, len(targets))
	for i, t := range targets {
		checked[i] = t.Unused
	}
	return &pickerModel{
		targets:  targets,
		checked:  checked,
		pageSize: pageSize,
		width:    100,
		keys:     newKeyMap(),
	}
}

func (m *pickerModel) Init() tea.Cmd {
	return nil
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *pickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.targets) - 1

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Confirm):
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < last {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(last, 0)
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = min(m.cursor+m.pageSize, max(last, 0))
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = max(m.cursor-m.pageSize, 0)
	case key.Matches(msg, m.keys.Toggle):
		if len(m.checked) > 0 {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}
	case key.Matches(msg, m.keys.All):
		m.setAll(func(model.Target) bool { return true })
	case key.Matches(msg, m.keys.None):
		m.setAll(func(model.Target) bool { return false })
	case key.Matches(msg, m.keys.Unused):
		m.setAll(func(t model.Target) bool { return t.Unused })
	}

	m.scrollToCursor()
	return m, nil
}

func (m *pickerModel) setAll(pick func(model.Target) bool) {
	for i, t := range m.targets {
		m.checked[i] = pick(t)
	}
}

func (m *pickerModel) scrollToCursor() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.pageSize {
		m.offset = m.cursor - m.pageSize + 1
	}
}

// selected returns checked targets in list order.
func (m *pickerModel) selected() []model.Target {
	var out []model.Target
	for i, t := range m.targets {
		if m.checked[i] {
			out = append(out, t)
		}
	}
	return out
}

func (m *pickerModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Select directories to remove"))
	b.WriteString("\n\n")

	end := min(m.offset+m.pageSize, len(m.targets))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	if len(m.targets) > m.pageSize {
		b.WriteString(styleDim.Render(fmt.Sprintf("  %d-%d of %d", m.offset+1, end, len(m.targets))))
		b.WriteString("\n")
	}

	sel := m.selected()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %d selected, %s\n", len(sel), styleSize.Render(model.FormatSize(model.TotalSize(sel)))))
	b.WriteString("  " + m.keys.helpLine() + "\n")
	return b.String()
}

func (m *pickerModel) renderRow(i int) string {
	t := m.targets[i]

	cursor := " "
	if i == m.cursor {
		cursor = iconCursor
	}
	box := styleDim.Render(iconUnchkd)
	if m.checked[i] {
		box = styleTitle.Render(iconChecked)
	}

	status := styleInUse.Render("in use")
	if t.Unused {
		status = styleUnused.Render("unused")
	}

	size := padLeft(model.FormatSize(t.Size), 10)
	prefix := fmt.Sprintf("%s %s %s  %s  ", cursor, box, styleSize.Render(size), padRight(status, 6))
	room := m.width - ansi.StringWidth(prefix)
	path := ansi.Truncate(t.Path, max(room, 10), "…")

	if i == m.cursor {
		path = styleSelected.Render(path)
	} else {
		path = stylePath.Render(path)
	}
	return prefix + path
}
