package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/cabi-host/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type nodeOp int

const (
	opListen nodeOp = iota
	opDial
)

func (o nodeOp) String() string {
	if o == opDial {
		return "dial"
	}
	return "listen"
}

type opResult struct {
	op   nodeOp
	addr string
	err  error
}

type interactiveModel struct {
	err      error
	lib      *host.Library
	node     *host.Node
	input    textinput.Model
	libName  string
	wasmFile string
	useQuic  bool
	verbose  bool
	op       nodeOp
	results  []opResult
	loaded   bool
}

type loadedMsg struct {
	err  error
	lib  *host.Library
	node *host.Node
}

type opDoneMsg opResult

func newInteractiveModel(libName, wasmFile string, useQuic, verbose bool) *interactiveModel {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "/ip4/127.0.0.1/tcp/41000"
	input.Focus()

	return &interactiveModel{
		libName:  libName,
		wasmFile: wasmFile,
		useQuic:  useQuic,
		verbose:  verbose,
		input:    input,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadLibrary
}

func (m *interactiveModel) loadLibrary() tea.Msg {
	lib, err := openLibrary(m.libName, m.wasmFile, newLogger(m.verbose))
	if err != nil {
		return loadedMsg{err: err}
	}

	if err := lib.InitTracing(); err != nil {
		_ = lib.Close()
		return loadedMsg{err: err}
	}

	node, err := lib.NewNode(m.useQuic)
	if err != nil {
		_ = lib.Close()
		return loadedMsg{err: err}
	}

	return loadedMsg{lib: lib, node: node}
}

func (m *interactiveModel) teardown() {
	if m.node != nil {
		_ = m.node.Close()
	}
	if m.lib != nil {
		_ = m.lib.Close()
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.teardown()
			return m, tea.Quit

		case "tab":
			if m.op == opListen {
				m.op = opDial
			} else {
				m.op = opListen
			}
			return m, nil

		case "enter":
			if !m.loaded {
				return m, nil
			}
			addr := strings.TrimSpace(m.input.Value())
			if addr == "" {
				return m, nil
			}
			m.input.Reset()
			op := m.op
			node := m.node
			return m, func() tea.Msg {
				var err error
				if op == opDial {
					err = node.Dial(addr)
				} else {
					err = node.Listen(addr)
				}
				return opDoneMsg{op: op, addr: addr, err: err}
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.lib = msg.lib
		m.node = msg.node
		m.loaded = true

	case opDoneMsg:
		m.results = append(m.results, opResult(msg))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("p2p-ping"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		return b.String()
	}

	if !m.loaded {
		b.WriteString("loading library...\n")
		return b.String()
	}

	transport := "tcp"
	if m.useQuic {
		transport = "quic"
	}
	b.WriteString(fmt.Sprintf("node ready (%s)\n\n", transport))

	for _, r := range m.results {
		line := fmt.Sprintf("%s %s", opStyle.Render(r.op.String()), r.addr)
		if r.err != nil {
			line += " " + errorStyle.Render(r.err.Error())
		} else {
			line += " " + okStyle.Render("ok")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.results) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s> %s\n", opStyle.Render(m.op.String()), m.input.View()))
	b.WriteString(helpStyle.Render("enter: run  tab: toggle listen/dial  esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func runInteractive(libName, wasmFile string, useQuic, verbose bool) error {
	m := newInteractiveModel(libName, wasmFile, useQuic, verbose)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		m.teardown()
		return err
	}
	return m.err
}
