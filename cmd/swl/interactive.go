package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/swl/config"
	"github.com/wippyai/swl/features"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	featureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// headerLines is the number of lines View draws above the output.
const headerLines = 4

type modelState int

const (
	stateBrowse modelState = iota
	stateEditInput
)

type interactiveModel struct {
	ctx      context.Context
	err      error
	cfg      config.Config
	input    string
	status   string
	content  string
	names    []string
	enabled  map[string]bool
	output   viewport.Model
	path     textinput.Model
	selected int
	state    modelState
	ready    bool
	width    int
}

func newInteractiveModel(ctx context.Context, cfg *config.Config, input string) *interactiveModel {
	m := &interactiveModel{
		ctx:     ctx,
		cfg:     *cfg,
		input:   input,
		names:   features.Names(),
		enabled: make(map[string]bool),
		state:   stateBrowse,
	}
	for _, name := range cfg.Features {
		m.enabled[name] = true
	}
	m.path = textinput.New()
	m.path.Prompt = "input: "
	m.path.Width = 60
	return m
}

type linkedMsg struct {
	err      error
	output   string
	files    int
	duration time.Duration
}

type writtenMsg struct {
	err  error
	path string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.link
}

// enabledFeatures returns the enabled passes in registry order.
func (m *interactiveModel) enabledFeatures() []string {
	var out []string
	for _, name := range m.names {
		if m.enabled[name] {
			out = append(out, name)
		}
	}
	return out
}

func (m *interactiveModel) snapshot() config.Config {
	cfg := m.cfg
	cfg.Features = m.enabledFeatures()
	cfg.EmitBinary = false
	return cfg
}

func (m *interactiveModel) link() tea.Msg {
	cfg := m.snapshot()
	start := time.Now()
	res, err := build(m.ctx, &cfg, m.input, nil)
	return linkedMsg{
		err:      err,
		output:   string(res.output),
		files:    len(res.files),
		duration: time.Since(start),
	}
}

func (m *interactiveModel) write() tea.Msg {
	cfg := m.snapshot()
	res, err := build(m.ctx, &cfg, m.input, nil)
	if err == nil {
		err = writeOutput(cfg.Output, res.output)
	}
	return writtenMsg{err: err, path: cfg.Output}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-headerLines-len(m.names)-2, 3)
		if !m.ready {
			m.output = viewport.New(msg.Width, height)
			m.output.SetContent(m.content)
			m.ready = true
		} else {
			m.output.Width = msg.Width
			m.output.Height = height
		}

	case tea.KeyMsg:
		if m.state == stateEditInput {
			return m.updateEdit(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.names)-1 {
				m.selected++
			}

		case " ", "x":
			name := m.names[m.selected]
			m.enabled[name] = !m.enabled[name]
			return m, m.link

		case "p":
			m.cfg.Pretty = !m.cfg.Pretty
			return m, m.link

		case "r":
			return m, m.link

		case "w":
			if m.cfg.Output == "-" {
				m.status = "no output file configured, use -o"
				return m, nil
			}
			return m, m.write

		case "e":
			m.state = stateEditInput
			m.path.SetValue(m.input)
			m.path.CursorEnd()
			return m, m.path.Focus()

		default:
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}

	case linkedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.content = msg.output
			m.output.SetContent(msg.output)
			m.status = fmt.Sprintf("linked %d file(s) in %s", msg.files, msg.duration.Round(time.Millisecond))
		}

	case writtenMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = "wrote " + msg.path
		}

	default:
		if m.ready {
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *interactiveModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if v := strings.TrimSpace(m.path.Value()); v != "" {
			m.input = v
		}
		m.path.Blur()
		m.state = stateBrowse
		return m, m.link
	case "esc":
		m.path.Blur()
		m.state = stateBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	if !m.ready {
		return "Linking..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SWL"))
	b.WriteString(" ")
	b.WriteString(m.input)
	if m.cfg.Pretty {
		b.WriteString(statusStyle.Render(" [pretty]"))
	}
	b.WriteString("\n\n")

	for i, name := range m.names {
		box := "[ ] "
		style := disabledStyle
		if m.enabled[name] {
			box = "[x] "
			style = featureStyle
		}
		line := box + style.Render(name)
		if i == m.selected {
			line = selectedStyle.Render("> " + box + name)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.state == stateEditInput {
		b.WriteString(m.path.View())
	} else if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • space toggle • p pretty • e input • r relink • w write • q quit"))
	return b.String()
}

func runInteractive(ctx context.Context, cfg *config.Config, input string) error {
	m := newInteractiveModel(ctx, cfg, input)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
