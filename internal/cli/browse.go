package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
)

// browseCommand creates the browse command, an interactive hierarchy viewer.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse and undock structures interactively",
		Long: `Open the docking hierarchy in an interactive view.

Keys: ↑/↓ move, u undock the selected structure from its parent,
s save, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			bp, err := c.loadBlueprint(path)
			if err != nil {
				return err
			}

			m := newBrowseModel(bp, func(bp *blueprint.Blueprint) error {
				return c.saveBlueprint(bp, path, "")
			})
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(browseModel); ok && fm.bp.Dirty() {
				printWarning("Unsaved changes to %s discarded", path)
			}
			return nil
		},
	}
}

// Browser styles
var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	browseNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	browseDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// =============================================================================
// browseModel - Interactive hierarchy browser
// =============================================================================

// browseRow is one visible line: a structure at its depth in the forest.
type browseRow struct {
	node  *blueprint.Node
	depth int
}

// browseModel is the bubbletea model for the browse command.
type browseModel struct {
	bp      *blueprint.Blueprint
	save    func(*blueprint.Blueprint) error
	rows    []browseRow
	cursor  int
	offset  int
	height  int
	message string
	// confirmQuit is set after a first quit request with unsaved changes.
	confirmQuit bool
}

func newBrowseModel(bp *blueprint.Blueprint, save func(*blueprint.Blueprint) error) browseModel {
	m := browseModel{bp: bp, save: save, height: 20}
	m.rebuild()
	return m
}

// rebuild relinearizes the forest and keeps the cursor on the same
// structure when it is still present.
func (m *browseModel) rebuild() {
	var selected *blueprint.Structure
	if m.cursor < len(m.rows) {
		selected = m.rows[m.cursor].node.Structure
	}

	m.rows = nil
	for _, root := range m.bp.Forest() {
		root.Walk(func(n *blueprint.Node, depth int) bool {
			m.rows = append(m.rows, browseRow{node: n, depth: depth})
			return true
		})
	}

	m.cursor = 0
	for i, r := range m.rows {
		if r.node.Structure == selected {
			m.cursor = i
			break
		}
	}
	m.scroll()
}

func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m browseModel) selected() *blueprint.Node {
	if m.cursor < len(m.rows) {
		return m.rows[m.cursor].node
	}
	return nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key != "q" && key != "esc" {
			m.confirmQuit = false
		}
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			if m.bp.Dirty() && !m.confirmQuit {
				m.confirmQuit = true
				m.message = StyleWarning.Render("Unsaved changes. Press q again to quit, s to save.")
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.scroll()
			}
		case "u":
			m.undockSelected()
		case "s":
			if err := m.save(m.bp); err != nil {
				m.message = StyleError.Render("Save failed: " + err.Error())
			} else {
				m.message = StyleSuccess.Render("Saved")
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
		m.scroll()
	}
	return m, nil
}

// undockSelected detaches the selected structure from its parent.
func (m *browseModel) undockSelected() {
	n := m.selected()
	if n == nil {
		return
	}
	if n.Via == nil {
		m.message = StyleWarning.Render(structureLabel(n.Structure) + " is a root")
		return
	}
	label := structureLabel(n.Structure) + " via " + shortPort(n.Via)
	if status := m.bp.UndockPort(n.Via); !status.OK() {
		m.message = StyleError.Render("Undock "+label+": ") + statusLabel(status)
		return
	}
	m.message = StyleSuccess.Render("Undocked " + label)
	m.rebuild()
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Station Blueprint"))
	if name := m.bp.Name(); name != nil && *name != "" {
		b.WriteString(" " + StyleValue.Render(*name))
	}
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("↑/↓ navigate  u undock  s save  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := cursor + strings.Repeat("  ", r.depth) + nodeLabel(r.node)
		if i == m.cursor {
			b.WriteString(browseSelectedStyle.Render(line))
		} else {
			b.WriteString(browseNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	st := m.bp.Stats()
	status := fmt.Sprintf("  %d structures · %d docked pairs · %d detached", st.Structures, st.DockedPairs, st.SecondaryRoots)
	if m.bp.Dirty() {
		status += " · modified"
	}
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render(status))
	if m.message != "" {
		b.WriteString("\n  " + m.message)
	}
	return b.String()
}
