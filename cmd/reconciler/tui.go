package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reconciler/internal/demo"
	"github.com/vango-dev/reconciler/internal/errors"
	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func tuiCmd() *cobra.Command {
	var (
		kind      string
		configDir string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Drive the counter demo from the terminal",
		Long: `Drive the counter demo interactively.

Keys:
  up/down, k/j   select a counter
  +, -           increment or decrement the selected counter
  a, r           add or remove a counter
  s              edit the step (enter to apply, esc to cancel)
  q              quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configDir, kind)
			if err != nil {
				return err
			}
			// The terminal belongs to the UI; logs would corrupt it.
			cfg.Log.Level = "error"
			a, err := newApp(cfg, os.Stderr, false)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := newTUIModel(a.root)
			if err != nil {
				return err
			}
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return errors.New("R402").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "target", "t", "", "Render target kind (overrides config)")
	cmd.Flags().StringVarP(&configDir, "config", "c", ".", "Directory containing reconciler.json or reconciler.yaml")

	return cmd
}

// tuiModel owns the root: bubbletea calls Update and View on a single
// goroutine, so the root needs no executor.
type tuiModel struct {
	root     *fiber.Root
	err      error
	step     int
	input    textinput.Model
	editing  bool
	selected int
	counters []demo.CounterView
}

func newTUIModel(root *fiber.Root) (*tuiModel, error) {
	ti := textinput.New()
	ti.Prompt = "step: "
	ti.Placeholder = "1"
	ti.CharLimit = 6
	ti.Width = 8

	m := &tuiModel{root: root, step: 1, input: ti}
	if err := root.Mount(m.app()); err != nil {
		return nil, errors.FromRuntime(err)
	}
	m.refresh()
	return m, nil
}

func (m *tuiModel) app() *vdom.Node {
	return demo.App.El(demo.AppProps{Title: "Counters", Step: m.step})
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.editing {
		return m.updateStep(key)
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.counters)-1 {
			m.selected++
		}

	case "+", "=":
		m.clickSelected("-inc")

	case "-", "_":
		m.clickSelected("-dec")

	case "a":
		m.click("add")

	case "r":
		m.click("remove")

	case "s":
		m.editing = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *tuiModel) updateStep(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil || n <= 0 {
			m.err = fmt.Errorf("step must be a positive integer, got %q", m.input.Value())
			return m, nil
		}
		m.step = n
		m.setErr(m.root.Update(m.app()))
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *tuiModel) clickSelected(suffix string) {
	if m.selected >= len(m.counters) {
		return
	}
	m.click(m.counters[m.selected].ID + suffix)
}

func (m *tuiModel) click(id string) {
	m.setErr(demo.Click(m.root, id))
	m.refresh()
}

func (m *tuiModel) setErr(err error) {
	if err != nil {
		m.err = errors.FromRuntime(err)
		return
	}
	m.err = nil
}

func (m *tuiModel) refresh() {
	m.counters = demo.Counters(m.root.Tree())
	if m.selected >= len(m.counters) {
		m.selected = max(len(m.counters)-1, 0)
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("reconciler"))
	b.WriteString("\n\n")

	if len(m.counters) == 0 {
		b.WriteString(helpStyle.Render("  no counters, press a to add one"))
		b.WriteString("\n")
	}
	for i, c := range m.counters {
		line := fmt.Sprintf("%-12s %s  %s",
			labelStyle.Render(c.Label),
			valueStyle.Render(fmt.Sprintf("%4d", c.Value)),
			c.Parity)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + c.ID))
		} else {
			b.WriteString("  " + c.ID)
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(fmt.Sprintf("step: %d", m.step))
	}
	b.WriteString("\n")

	s := m.root.Stats()
	b.WriteString(statsStyle.Render(fmt.Sprintf(
		"passes %d  renders %d  skipped %d  commits %d  live %d",
		s.Passes, s.Renders, s.Skipped, s.Commits, s.LiveFibers)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(helpStyle.Render("enter: apply • esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓: select • +/-: change • a/r: add/remove • s: step • q: quit"))
	}
	b.WriteString("\n")
	return b.String()
}
