package tui

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maw3193/bft/internal/interp"
)

const (
	// sourceRows is how many instructions the source pane shows at once.
	sourceRows = 9

	// tapeCols is how many cells the tape pane shows around the head.
	tapeCols = 6

	// stepsPerTick bounds how many instructions one run tick executes.
	stepsPerTick = 65536
)

type model struct {
	theme Theme
	deps  Deps

	mach  *interp.Machine[uint8]
	input *bytes.Reader
	out   *bytes.Buffer

	outView viewport.Model

	running bool
	runErr  error

	width  int
	height int
}

// Run starts the debugger over the program in deps and blocks until the user
// quits. The machine always uses 8-bit cells; the rest of the machine spec
// (tape length, extensibility, EOF mode) is honored as given.
func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	m := model{
		theme:   DefaultTheme(),
		deps:    deps,
		outView: viewport.New(72, 6),
	}
	m.resetMachine()
	return m
}

func (m *model) resetMachine() {
	m.mach = interp.New[uint8](m.deps.Program, m.deps.Spec)
	m.input = bytes.NewReader(m.deps.Input)
	m.out = &bytes.Buffer{}
	m.outView.SetContent("")
	m.running = false
	m.runErr = nil
}

// step executes one instruction. Faults park the machine: the failed
// instruction stays under the program counter so the view can show it.
func (m *model) step() {
	if m.runErr != nil || m.mach.Done() {
		m.running = false
		return
	}
	if _, err := m.mach.Step(m.input, m.out); err != nil {
		m.runErr = err
		m.running = false
		return
	}
	if m.mach.Done() {
		m.running = false
	}
}

func (m *model) syncOutput() {
	m.outView.SetContent(printableOutput(m.out.Bytes()))
	m.outView.GotoBottom()
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.outView.Width = max(20, msg.Width-8)
		m.outView.Height = max(3, msg.Height-sourceRows-14)
		return m, nil

	case runTickMsg:
		if !m.running {
			return m, nil
		}
		for i := 0; i < stepsPerTick && m.running; i++ {
			m.step()
		}
		m.syncOutput()
		if m.running {
			return m, cmdRunTick()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case " ", "n":
			m.running = false
			m.step()
			m.syncOutput()
			return m, nil

		case "r":
			if m.running {
				m.running = false
				return m, nil
			}
			if m.runErr == nil && !m.mach.Done() {
				m.running = true
				return m, cmdRunTick()
			}
			return m, nil

		case "R":
			m.resetMachine()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.outView, cmd = m.outView.Update(msg)
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("bft debugger") + "\n" +
		m.theme.Subtitle.Render(m.deps.Program.Name+" · "+specSummary(m.deps.Spec)) + "\n"

	source := m.theme.Subtitle.Render("program") + "\n" +
		m.theme.Card.Render(renderSource(m.deps.Program, m.mach.PC(), sourceRows, m.theme))
	tape := m.theme.Subtitle.Render("tape") + "\n" +
		m.theme.Card.Render(renderTape(m.mach.Cells(), m.mach.Head(), tapeCols, m.theme))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, source, "  ", tape)

	output := m.theme.Subtitle.Render("output") + "\n" +
		m.theme.Card.Render(m.outView.View())

	help := m.theme.Help.Render("space/n step • r run/pause • R reset • ↑/↓ scroll output • q quit")

	return wrap.Render(header + "\n" + panes + "\n" + output + "\n" + m.statusLine() + "\n" + help)
}

func (m model) statusLine() string {
	state := "ready"
	switch {
	case m.runErr != nil:
		state = m.theme.Fault.Render(userMessage(m.runErr))
	case m.mach.Done():
		state = "halted"
	case m.running:
		state = "running"
	case m.mach.Steps() > 0:
		state = "paused"
	}
	return fmt.Sprintf("steps %d • head %d • pc %d/%d • %s",
		m.mach.Steps(), m.mach.Head(), m.mach.PC(), len(m.deps.Program.Instructions), state)
}
