package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/store"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ProjectListModel - Interactive project selection
// =============================================================================

// projectEntry is one selectable row in the picker.
type projectEntry struct {
	ID    string
	Name  string
	Nodes int
	Edges int
}

// ProjectListModel is the bubbletea model for interactive project selection.
type ProjectListModel struct {
	Projects []projectEntry
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewProjectListModel creates a new project list model.
func NewProjectListModel(projects []projectEntry) ProjectListModel {
	return ProjectListModel{
		Projects: projects,
		Height:   15,
	}
}

func (m ProjectListModel) Init() tea.Cmd {
	return nil
}

func (m ProjectListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Projects)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Projects[m.Cursor].ID
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ProjectListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Project"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Projects) {
		end = len(m.Projects)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Projects[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := p.Name
		if name == "" {
			name = "—"
		}
		rows = append(rows, []string{cursor, p.ID, name, strconv.Itoa(p.Nodes), strconv.Itoa(p.Edges)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Project", "Name", "Nodes", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Projects))))

	return b.String()
}

// pickProject runs the interactive picker over the given project ids and
// returns the selected id.
func pickProject(ctx context.Context, st store.Store, ids []string) (string, error) {
	slices.Sort(ids)

	entries := make([]projectEntry, 0, len(ids))
	for _, id := range ids {
		p, err := st.Get(ctx, id)
		if err != nil {
			p = flow.Project{ID: id}
		}
		entries = append(entries, projectEntry{
			ID:    id,
			Name:  p.Name,
			Nodes: len(p.Nodes),
			Edges: len(p.Edges),
		})
	}
	return pickEntry(entries)
}

// pickEntry runs the interactive picker over prepared entries.
func pickEntry(entries []projectEntry) (string, error) {
	final, err := tea.NewProgram(NewProjectListModel(entries)).Run()
	if err != nil {
		return "", fmt.Errorf("run project picker: %w", err)
	}

	m, ok := final.(ProjectListModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no project selected")
	}
	return m.Selected, nil
}
