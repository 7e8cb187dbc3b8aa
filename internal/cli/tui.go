package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/proofscope/proofscope/pkg/analysis"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// nodeRow is one node's metrics in the browser.
type nodeRow struct {
	ID         string
	Depth      int
	Width      int
	Reach      int
	Bottleneck float64
	Source     bool
	Sink       bool
}

// Sort modes for the node browser, cycled with the "s" key.
const (
	sortByBottleneck = iota
	sortByDepth
	sortByReach
	sortByID
	numSortModes
)

var sortNames = [numSortModes]string{"bottleneck", "depth", "reach", "id"}

// NodeListModel is the bubbletea model for browsing a report's nodes.
type NodeListModel struct {
	Rows   []nodeRow
	Cursor int
	Height int
	Offset int
	Sort   int
}

// NewNodeListModel builds the browser from an analysis report.
func NewNodeListModel(r *analysis.Report) NodeListModel {
	sources := make(map[string]bool, len(r.Sources))
	for _, id := range r.Sources {
		sources[id] = true
	}
	sinks := make(map[string]bool, len(r.Sinks))
	for _, id := range r.Sinks {
		sinks[id] = true
	}

	rows := make([]nodeRow, 0, len(r.Depths))
	for id, depth := range r.Depths {
		rows = append(rows, nodeRow{
			ID:         id,
			Depth:      depth,
			Width:      r.Widths[id],
			Reach:      r.Reachability[id],
			Bottleneck: r.Bottlenecks[id],
			Source:     sources[id],
			Sink:       sinks[id],
		})
	}

	m := NodeListModel{Rows: rows, Height: 15}
	m.sortRows()
	return m
}

func (m *NodeListModel) sortRows() {
	sort.Slice(m.Rows, func(i, j int) bool {
		a, b := m.Rows[i], m.Rows[j]
		switch m.Sort {
		case sortByDepth:
			if a.Depth != b.Depth {
				return a.Depth > b.Depth
			}
		case sortByReach:
			if a.Reach != b.Reach {
				return a.Reach > b.Reach
			}
		case sortByID:
		default:
			if a.Bottleneck != b.Bottleneck {
				return a.Bottleneck > b.Bottleneck
			}
		}
		return a.ID < b.ID
	})
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			if len(m.Rows) > 0 {
				m.Cursor = len(m.Rows) - 1
			}
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		case "s":
			m.Sort = (m.Sort + 1) % numSortModes
			m.sortRows()
			m.Cursor = 0
			m.Offset = 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Node Browser"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("↑/↓ navigate  s sort (%s)  q quit", sortNames[m.Sort])))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		role := ""
		switch {
		case r.Source:
			role = "source"
		case r.Sink:
			role = "sink"
		}

		rows = append(rows, []string{
			cursor,
			r.ID,
			fmt.Sprintf("%d", r.Depth),
			fmt.Sprintf("%d", r.Width),
			fmt.Sprintf("%d", r.Reach),
			fmt.Sprintf("%.2f", r.Bottleneck),
			role,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Depth", "Width", "Reach", "Bottleneck", "Role").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 6 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if col == 1 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			}
			if col == 1 {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
