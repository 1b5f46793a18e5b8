package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cfgbench/graph"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// listWindow is how many node rows the list view shows at once.
const listWindow = 20

type browserState int

const (
	stateList browserState = iota
	stateDetail
	stateGoto
)

type browserModel struct {
	g         *graph.Graph
	filename  string
	order     []uint32
	position  map[uint32]int
	selected  int
	calleeIdx int
	gotoInput textinput.Model
	errMsg    string
	state     browserState
}

func newBrowserModel(g *graph.Graph, filename string) *browserModel {
	order := g.Order()
	position := make(map[uint32]int, len(order))
	for i, id := range order {
		position[id] = i
	}
	return &browserModel{
		g:        g,
		filename: filename,
		order:    order,
		position: position,
		state:    stateList,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateGoto {
		return m.updateGoto(keyMsg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		switch m.state {
		case stateList:
			if m.selected > 0 {
				m.selected--
			}
		case stateDetail:
			if m.calleeIdx > 0 {
				m.calleeIdx--
			}
		}

	case "down", "j":
		switch m.state {
		case stateList:
			if m.selected < len(m.order)-1 {
				m.selected++
			}
		case stateDetail:
			if m.calleeIdx < len(m.current().Callees)-1 {
				m.calleeIdx++
			}
		}

	case "enter":
		switch m.state {
		case stateList:
			m.calleeIdx = 0
			m.state = stateDetail
		case stateDetail:
			// Jump to the selected callee.
			callees := m.current().Callees
			if len(callees) > 0 {
				m.selected = m.position[callees[m.calleeIdx]]
				m.calleeIdx = 0
			}
		}

	case "/":
		ti := textinput.New()
		ti.Placeholder = "node id"
		ti.Prompt = "goto: "
		ti.Width = 12
		ti.Focus()
		m.gotoInput = ti
		m.errMsg = ""
		m.state = stateGoto

	case "esc":
		if m.state == stateDetail {
			m.state = stateList
		}
	}

	return m, nil
}

func (m *browserModel) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.state = stateList
		return m, nil

	case "enter":
		id, err := strconv.ParseUint(m.gotoInput.Value(), 10, 32)
		if err != nil || m.g.Node(uint32(id)) == nil {
			m.errMsg = fmt.Sprintf("no node with id %q", m.gotoInput.Value())
			m.state = stateList
			return m, nil
		}
		m.selected = m.position[uint32(id)]
		m.calleeIdx = 0
		m.state = stateDetail
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *browserModel) current() *graph.Node {
	return m.g.Node(m.order[m.selected])
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Callgraph Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	fmt.Fprintf(&b, "  (%d nodes, %d edges)\n\n", m.g.Len(), m.g.EdgeCount())

	switch m.state {
	case stateList:
		m.viewList(&b)
	case stateDetail:
		m.viewDetail(&b)
	case stateGoto:
		b.WriteString(m.gotoInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter jump • esc back"))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	return b.String()
}

func (m *browserModel) viewList(b *strings.Builder) {
	start := 0
	if m.selected >= listWindow {
		start = m.selected - listWindow + 1
	}
	end := start + listWindow
	if end > len(m.order) {
		end = len(m.order)
	}

	for i := start; i < end; i++ {
		row := m.formatNode(m.order[i])
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • / goto id • q quit"))
}

func (m *browserModel) viewDetail(b *strings.Builder) {
	n := m.current()
	b.WriteString(nodeStyle.Render(graph.FunctionName(n.ID)))
	if n.ID == m.g.RootID {
		b.WriteString(metaStyle.Render("  (root)"))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(b, "depth: %s\n", metaStyle.Render(strconv.Itoa(int(n.Depth))))
	fmt.Fprintf(b, "intra control flow: %s\n", metaStyle.Render(strconv.FormatBool(n.IntraControlFlow)))
	fmt.Fprintf(b, "code prefetch: %s\n", metaStyle.Render(strconv.FormatBool(n.Prefetch)))
	fmt.Fprintf(b, "callees: %s\n\n", metaStyle.Render(strconv.Itoa(len(n.Callees))))

	for i, callee := range n.Callees {
		row := m.formatNode(callee)
		if i == m.calleeIdx {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	if len(n.Callees) == 0 {
		b.WriteString(helpStyle.Render("(leaf)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select callee • enter follow • esc back • q quit"))
}

func (m *browserModel) formatNode(id uint32) string {
	n := m.g.Node(id)
	meta := fmt.Sprintf("depth=%d callees=%d", n.Depth, len(n.Callees))
	if n.IntraControlFlow {
		meta += " branch"
	}
	return nodeStyle.Render(graph.FunctionName(id)) + "  " + metaStyle.Render(meta)
}

func runInteractive(g *graph.Graph, filename string) error {
	p := tea.NewProgram(newBrowserModel(g, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
