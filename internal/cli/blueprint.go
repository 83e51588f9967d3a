package cli

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
	pkgio "github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/io"
)

// =============================================================================
// Loading and Saving
// =============================================================================

// loadBlueprint imports path against the configured catalog and logs every
// repair made to legacy port data.
func (c *CLI) loadBlueprint(path string) (*blueprint.Blueprint, error) {
	cat, err := c.structureCatalog()
	if err != nil {
		return nil, err
	}

	prog := newProgress(c.Logger)
	bp, repairs, err := pkgio.ImportJSON(path, cat)
	if err != nil {
		return nil, err
	}
	for _, r := range repairs {
		c.Logger.Warn("Repaired", "file", filepath.Base(path), "repair", r.String())
	}
	prog.done("Loaded " + filepath.Base(path) + " (" + strconv.Itoa(bp.Len()) + " structures)")
	return bp, nil
}

// saveBlueprint writes bp to output, or back to path when output is empty.
func (c *CLI) saveBlueprint(bp *blueprint.Blueprint, path, output string) error {
	if output == "" {
		output = path
	}
	if err := pkgio.ExportJSON(bp, output); err != nil {
		return err
	}
	c.Logger.Debug("Saved", "file", output)
	return nil
}

// editFlags are shared by the commands that modify a blueprint file.
type editFlags struct {
	output string
	dryRun bool
}

func (f *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the result here instead of editing in place")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "apply the change without saving")
}

// edit loads path, applies fn and saves the result unless fn fails or the
// dry-run flag is set. fn returns the mutation status and a success message.
func (c *CLI) edit(path string, flags *editFlags, fn func(bp *blueprint.Blueprint) (blueprint.Status, string)) error {
	bp, err := c.loadBlueprint(path)
	if err != nil {
		return err
	}

	status, msg := fn(bp)
	if err := status.Err(); err != nil {
		return err
	}
	if flags.dryRun {
		printSuccess("%s %s", msg, StyleDim.Render("(dry run)"))
		return nil
	}
	if err := c.saveBlueprint(bp, path, flags.output); err != nil {
		return err
	}
	printSuccess("%s", msg)
	return nil
}

// =============================================================================
// Port References
// =============================================================================

// portRef is a parsed "<structure>.<port>" argument.
type portRef struct {
	structure int
	port      string
}

func (r portRef) String() string {
	return strconv.Itoa(r.structure) + "." + r.port
}

// parsePortRef parses "<structure>.<port>", e.g. "3.StandardDockingPortB",
// "3.B" or "3.2".
func parsePortRef(s string) (portRef, error) {
	id, port, ok := strings.Cut(s, ".")
	if !ok || port == "" {
		return portRef{}, errors.New(errors.ErrCodeInvalidInput, "port %q: want <structure>.<port>", s)
	}
	n, err := strconv.Atoi(id)
	if err != nil || n < 0 {
		return portRef{}, errors.New(errors.ErrCodeInvalidInput, "port %q: structure id must be a non-negative integer", s)
	}
	return portRef{structure: n, port: port}, nil
}

// shortPortPrefix is dropped from port names in compact output and may be
// omitted from port arguments.
const shortPortPrefix = "StandardDockingPort"

// resolvePort finds the port named by r. The port part matches the full port
// name, the name without the "StandardDockingPort" prefix, or an order index.
// It returns nil when nothing matches, which mutations report as an invalid
// port status.
func resolvePort(bp *blueprint.Blueprint, r portRef) *blueprint.Port {
	s := bp.GetStructure(r.structure)
	if s == nil {
		return nil
	}
	if p := s.Port(catalog.PortName(r.port)); p != nil {
		return p
	}
	if p := s.Port(catalog.PortName(shortPortPrefix + r.port)); p != nil {
		return p
	}
	if n, err := strconv.Atoi(r.port); err == nil {
		return s.PortByOrder(n)
	}
	return nil
}

// shortPort returns the port name without the standard prefix.
func shortPort(p *blueprint.Port) string {
	if p == nil {
		return ""
	}
	if s, ok := strings.CutPrefix(string(p.Name()), shortPortPrefix); ok && s != "" {
		return s
	}
	return string(p.Name())
}

// structureLabel renders "TYPE #id".
func structureLabel(s *blueprint.Structure) string {
	return s.Type() + " #" + strconv.Itoa(s.ID())
}
