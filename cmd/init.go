package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jackchuka/nmclean/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up nmclean config interactively",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

type initStep int

const (
	stepWelcome   initStep = iota
	stepOverwrite          // only if config exists
	stepRoot
	stepExclude
	stepConfirm
	stepDone
)

var (
	styleInitTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("73"))
	styleInitSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("71"))
	styleInitWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	styleInitDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

type initModel struct {
	step         initStep
	input        textinput.Model
	root         string
	rootWarning  string
	excludes     []string
	configPath   string
	configExists bool
	err          error
	cancelled    bool
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := cfgFile
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	_, err := os.Stat(configPath)
	configExists := err == nil

	m := newInitModel(configPath, configExists)

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return err
	}

	if final, ok := result.(*initModel); ok && final.err != nil {
		return final.err
	}

	return nil
}

func newInitModel(configPath string, configExists bool) *initModel {
	ti := textinput.New()
	ti.Placeholder = "~"
	ti.CharLimit = 256
	ti.Width = 50

	return &initModel{
		step:         stepWelcome,
		input:        ti,
		configPath:   configPath,
		configExists: configExists,
	}
}

func (m *initModel) Init() tea.Cmd {
	return nil
}

func (m *initModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()

		// Global quit
		if key == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}

		switch m.step {
		case stepWelcome:
			if key == "enter" {
				if m.configExists {
					m.step = stepOverwrite
				} else {
					return m, m.focus(stepRoot, "~")
				}
			}
			if key == "q" || key == "esc" {
				m.cancelled = true
				return m, tea.Quit
			}

		case stepOverwrite:
			if key == "y" || key == "Y" {
				return m, m.focus(stepRoot, "~")
			}
			m.cancelled = true
			return m, tea.Quit

		case stepRoot:
			if key == "enter" {
				val := strings.TrimSpace(m.input.Value())
				if val == "" {
					val = "~"
				}
				m.root = val
				if expanded, exists := expandAndCheck(val); !exists {
					m.rootWarning = fmt.Sprintf("  %s does not exist yet", expanded)
				}
				return m, m.focus(stepExclude, "*/archive/*")
			}
			if key == "esc" {
				m.cancelled = true
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case stepExclude:
			if key == "enter" {
				val := strings.TrimSpace(m.input.Value())
				if val == "" {
					m.step = stepConfirm
					return m, nil
				}
				if !isDuplicate(m.excludes, val) {
					m.excludes = append(m.excludes, val)
				}
				m.input.Reset()
				return m, nil
			}
			if key == "esc" {
				return m, m.focus(stepRoot, "~")
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case stepConfirm:
			if key == "enter" {
				if err := config.Save(m.config(), m.configPath); err != nil {
					m.err = err
				}
				m.step = stepDone
				return m, tea.Quit
			}
			if key == "esc" {
				return m, m.focus(stepExclude, "*/archive/*")
			}

		case stepDone:
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *initModel) focus(step initStep, placeholder string) tea.Cmd {
	m.step = step
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
	return textinput.Blink
}

// config builds the file to write: defaults plus the entered root and any
// extra exclude patterns.
func (m *initModel) config() *config.Config {
	c := config.NewConfig()
	if m.root != "" {
		c.ScanRoot = m.root
	}
	for _, e := range m.excludes {
		if !isDuplicate(c.Exclude, e) {
			c.Exclude = append(c.Exclude, e)
		}
	}
	return c
}

func (m *initModel) View() string {
	var b strings.Builder

	switch m.step {
	case stepWelcome:
		b.WriteString(styleInitTitle.Render("Welcome to nmclean!"))
		b.WriteString("\n\n")
		b.WriteString("Config will be saved to ")
		b.WriteString(styleInitDim.Render(m.configPath))
		b.WriteString("\n\n")
		b.WriteString(styleInitDim.Render("Press Enter to continue, Esc to cancel"))
		b.WriteString("\n")

	case stepOverwrite:
		b.WriteString(styleInitWarn.Render("Config already exists"))
		b.WriteString(" at ")
		b.WriteString(styleInitDim.Render(m.configPath))
		b.WriteString("\n\n")
		b.WriteString("Overwrite? ")
		b.WriteString(styleInitDim.Render("[y/N]"))
		b.WriteString("\n")

	case stepRoot:
		b.WriteString(styleInitTitle.Render("Scan root"))
		b.WriteString("\n\n")
		b.WriteString("Directory to search for node_modules (Enter for your home directory):\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")

	case stepExclude:
		b.WriteString(styleInitTitle.Render("Exclude patterns"))
		b.WriteString("\n\n")
		b.WriteString(styleInitSuccess.Render("  root: " + m.root))
		b.WriteString("\n")
		if m.rootWarning != "" {
			b.WriteString(styleInitWarn.Render(m.rootWarning))
			b.WriteString("\n")
		}
		for _, e := range m.excludes {
			b.WriteString(styleInitSuccess.Render("  - " + e))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString("Add a wildcard pattern to skip (or press Enter to finish):\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")

	case stepConfirm:
		c := m.config()
		b.WriteString(styleInitTitle.Render("Ready to write config"))
		fmt.Fprintf(&b, " scanning %s, excluding:\n\n", c.ScanRoot)
		for _, e := range c.Exclude {
			b.WriteString("  - " + e + "\n")
		}
		b.WriteString("\n")
		b.WriteString(styleInitDim.Render("[Enter] Write config  [Esc] Go back"))
		b.WriteString("\n")

	case stepDone:
		if m.err != nil {
			b.WriteString(styleInitWarn.Render("Error: " + m.err.Error()))
			b.WriteString("\n")
		} else {
			b.WriteString(styleInitSuccess.Render("Config saved to " + m.configPath))
			b.WriteString("\n\n")
			b.WriteString("Run ")
			b.WriteString(styleInitTitle.Render("nmclean list"))
			b.WriteString(" to see what can be cleaned.\n")
		}
	}

	return b.String()
}

func expandAndCheck(path string) (expanded string, exists bool) {
	expanded = config.ExpandHome(path)
	_, err := os.Stat(expanded)
	return expanded, err == nil
}

func isDuplicate(items []string, candidate string) bool {
	return slices.Contains(items, candidate)
}
