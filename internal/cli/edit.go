package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// addCommand creates the add command for adding an undocked structure.
func (c *CLI) addCommand() *cobra.Command {
	var (
		flags editFlags
		id    int
	)

	cmd := &cobra.Command{
		Use:   "add <file> <type>",
		Short: "Add an undocked structure",
		Long: `Add a structure of the given catalog type (e.g. CM, LSM, AM).

The new structure is undocked and becomes the root of its own hierarchy
until it is docked to the station. Without --id it takes the next free id.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.structureCatalog()
			if err != nil {
				return err
			}
			scene, ok := cat.Resolve(args[1])
			if !ok {
				return errors.New(errors.ErrCodeUnknownStructureType, "unknown structure type %q (see '%s catalog')", args[1], appName)
			}
			explicit := cmd.Flags().Changed("id")

			return c.edit(args[0], &flags, func(bp *blueprint.Blueprint) (blueprint.Status, string) {
				var (
					s      *blueprint.Structure
					status blueprint.Status
				)
				if explicit {
					s, status = bp.AddStructureWithID(scene, id)
				} else {
					s, status = bp.AddStructure(scene)
				}
				if !status.OK() {
					return status, ""
				}
				return status, "Added " + structureLabel(s)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&id, "id", 0, "structure id (default: next free id)")
	return cmd
}

// removeCommand creates the remove command. Removal never cascades; the
// structure must be undocked first.
func (c *CLI) removeCommand() *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "remove <file> <structure-id>",
		Short: "Remove an undocked structure",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "structure id %q", args[1])
			}
			return c.edit(args[0], &flags, func(bp *blueprint.Blueprint) (blueprint.Status, string) {
				label := "#" + args[1]
				if s := bp.GetStructure(id); s != nil {
					label = structureLabel(s)
				}
				return bp.RemoveStructureByID(id), "Removed " + label
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// dockCommand creates the dock command.
func (c *CLI) dockCommand() *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "dock <file> <structure.port> <structure.port>",
		Short: "Dock two ports",
		Long: `Dock two free ports on structures in different hierarchies.

Ports are written as <structure>.<port>, where <port> is the full port
name, the name without "StandardDockingPort", or the port's order index:

  hellion-blueprint dock station.json 0.B 4.StandardDockingPortA
  hellion-blueprint dock station.json 0.2 4.1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parsePortRef(args[1])
			if err != nil {
				return err
			}
			b, err := parsePortRef(args[2])
			if err != nil {
				return err
			}
			return c.edit(args[0], &flags, func(bp *blueprint.Blueprint) (blueprint.Status, string) {
				return bp.DockPorts(resolvePort(bp, a), resolvePort(bp, b)), fmt.Sprintf("Docked %s to %s", a, b)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// undockCommand creates the undock command.
func (c *CLI) undockCommand() *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "undock <file> <structure.port>",
		Short: "Undock a port from its partner",
		Long: `Undock a port from its partner. The side cut off from the station's
primary structure becomes a hierarchy of its own.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parsePortRef(args[1])
			if err != nil {
				return err
			}
			return c.edit(args[0], &flags, func(bp *blueprint.Blueprint) (blueprint.Status, string) {
				return bp.UndockPort(resolvePort(bp, ref)), "Undocked " + ref.String()
			})
		},
	}

	flags.register(cmd)
	return cmd
}
