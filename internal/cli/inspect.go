package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	pkgio "github.com/florent-lamiraux/hpp-model-urdf/pkg/io"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command, an interactive joint browser
// for a built model document.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <model.json>",
		Short: "Browse the joints of a built model interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pkgio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			m := NewJointListModel(doc)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// JointListModel is the bubbletea model for the joint browser. The left
// pane lists the joints in document order; the right pane shows the
// selected joint's details.
type JointListModel struct {
	Doc    *pkgio.Document
	Cursor int
	Height int
	Offset int
}

// NewJointListModel creates a joint browser over the given document.
func NewJointListModel(doc *pkgio.Document) JointListModel {
	return JointListModel{Doc: doc, Height: 15}
}

func (m JointListModel) Init() tea.Cmd {
	return nil
}

func (m JointListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Doc.Joints)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor = 0
			m.Offset = 0
		case "G", "end":
			m.Cursor = len(m.Doc.Joints) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m JointListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Joints of %s", m.Doc.Name)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Doc.Joints) {
		end = len(m.Doc.Joints)
	}

	var list []string
	for i := m.Offset; i < end; i++ {
		j := m.Doc.Joints[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-24s %s", cursor, j.Name, listDimStyle.Render(j.Type))
		if i == m.Cursor {
			list = append(list, listSelectedStyle.Render(line))
		} else {
			list = append(list, listNormalStyle.Render(line))
		}
	}

	left := strings.Join(list, "\n")
	right := m.detailPane()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))

	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Doc.Joints))))

	return b.String()
}

// detailPane renders the selected joint's attributes.
func (m JointListModel) detailPane() string {
	if len(m.Doc.Joints) == 0 {
		return listDimStyle.Render("no joints")
	}
	j := m.Doc.Joints[m.Cursor]

	var b strings.Builder
	label := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	row := func(key, value string) {
		b.WriteString(label.Render(key) + " " + StyleValue.Render(value) + "\n")
	}

	row("type", j.Type)
	if j.Parent != "" {
		row("parent", j.Parent)
	}
	// Translation lives in the last column of the column-major pose.
	row("position", fmt.Sprintf("(%.3f, %.3f, %.3f)", j.Pose[12], j.Pose[13], j.Pose[14]))
	row("dof", fmt.Sprintf("%d", len(j.DOF)))
	for i, d := range j.DOF {
		if d.Bounded {
			row(fmt.Sprintf("  dof %d", i), fmt.Sprintf("[%.3f, %.3f]", d.Lower, d.Upper))
		} else {
			row(fmt.Sprintf("  dof %d", i), "unbounded")
		}
	}
	if j.Body != nil {
		row("mass", fmt.Sprintf("%.3f kg", j.Body.Mass))
		c := j.Body.CenterOfMass
		row("com", fmt.Sprintf("(%.3f, %.3f, %.3f)", c[0], c[1], c[2]))
	}

	return b.String()
}
