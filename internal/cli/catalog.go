package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
)

// catalogCommand creates the catalog command listing known structure types.
func (c *CLI) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List structure types and their docking ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.structureCatalog()
			if err != nil {
				return err
			}
			return writeCatalog(cmd.OutOrStdout(), cat)
		},
	}
}

func writeCatalog(w io.Writer, cat *catalog.Catalog) error {
	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	var rows [][]string
	for _, d := range cat.Types() {
		names := make([]string, len(d.PortSlots))
		for i, slot := range d.PortSlots {
			name, _ := strings.CutPrefix(string(slot.Name), shortPortPrefix)
			if name == "" {
				name = string(slot.Name)
			}
			names[i] = name
		}
		rows = append(rows, []string{
			d.SceneID.String(),
			d.DisplayName,
			strings.Join(names, " "),
			formatFloat(d.NominalAirVolume),
			formatFloat(d.StandbyPowerRequirement),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Scene", "Type", "Ports", "Air", "Standby").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return StyleTitle
			case col == 2:
				return stylePort
			default:
				return lipgloss.NewStyle()
			}
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
