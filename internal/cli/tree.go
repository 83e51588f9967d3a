package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
)

// treeCommand creates the tree command for printing the docking hierarchy.
func (c *CLI) treeCommand() *cobra.Command {
	var ports bool

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the docking hierarchy",
		Long: `Print the blueprint as a forest: the primary structure's hierarchy
first, then every detached hierarchy by root id. Children are listed in
port order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := c.loadBlueprint(args[0])
			if err != nil {
				return err
			}
			return writeForest(cmd.OutOrStdout(), bp, ports)
		},
	}

	cmd.Flags().BoolVarP(&ports, "ports", "p", false, "list free ports as leaves")
	return cmd
}

var treeEnumStyle = lipgloss.NewStyle().Foreground(colorMuted).MarginRight(1)

// writeForest prints every hierarchy of bp to w.
func writeForest(w io.Writer, bp *blueprint.Blueprint, ports bool) error {
	forest := bp.Forest()
	if len(forest) == 0 {
		_, err := fmt.Fprintln(w, StyleDim.Render("(empty blueprint)"))
		return err
	}

	var b strings.Builder
	for i, root := range forest {
		if i > 0 {
			b.WriteString("\n")
		}
		t := buildTree(root, ports).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(treeEnumStyle)
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func buildTree(n *blueprint.Node, ports bool) *tree.Tree {
	t := tree.Root(nodeLabel(n))
	for _, pn := range n.Ports {
		switch {
		case pn.Child != nil:
			child := buildTree(pn.Child, ports)
			child.Root(portPrefix(pn.Port) + nodeLabel(pn.Child))
			t.Child(child)
		case ports && !pn.Port.IsDocked():
			t.Child(portPrefix(pn.Port) + styleFreePort.Render("free"))
		}
	}
	return t
}

// nodeLabel names the structure at n, the port it docks to its parent
// through, and its root badge.
func nodeLabel(n *blueprint.Node) string {
	label := StyleValue.Render(structureLabel(n.Structure))
	if n.Via != nil {
		label += StyleDim.Render(" via ") + portLabel(n.Via)
	}
	if badge := rootBadge(n.Structure); badge != "" {
		label += " " + badge
	}
	return label
}

// portPrefix leads a child line with the parent port it hangs from.
func portPrefix(p *blueprint.Port) string {
	return portLabel(p) + StyleDim.Render(markDocking)
}
