package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // dot, svg, pdf, png
	detailed bool     // label edges with port names
	clusters bool     // box each hierarchy
	scale    float64  // PNG scale factor
}

// renderCommand creates the render command for drawing the docking graph.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render the docking graph (DOT, SVG, PDF, PNG)",
		Long: `Render the blueprint as an undirected graph: one node per structure,
one edge per docked pair. The primary structure is double-bordered and the
roots of detached hierarchies are bold.

PDF and PNG output need rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with port names")
	cmd.Flags().BoolVar(&opts.clusters, "clusters", false, "draw each hierarchy in its own box")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// parseFormats parses the --format flag. If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPDF: true, formatPNG: true}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// outputPath returns where format f is written: the -o path when it is the
// only format, otherwise the base path (or the input name) with f's extension.
func outputPath(input string, opts *renderOpts, f string) string {
	if opts.output != "" && len(opts.formats) == 1 {
		return opts.output
	}
	base := opts.output
	if base == "" {
		base = input
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + f
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	bp, err := c.loadBlueprint(input)
	if err != nil {
		return err
	}
	outputs, err := renderFormats(ctx, bp, opts)
	if err != nil {
		return err
	}

	for _, f := range opts.formats {
		path := outputPath(input, opts, f)
		if err := os.WriteFile(path, outputs[f], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		printFile(path)
	}
	return nil
}

// renderFormats renders bp once per requested format. SVG is rendered at
// most once and reused for PDF and PNG conversion.
func renderFormats(ctx context.Context, bp *blueprint.Blueprint, opts *renderOpts) (map[string][]byte, error) {
	dot := render.ToDOT(bp, render.Options{Detailed: opts.detailed, Clusters: opts.clusters})
	out := make(map[string][]byte, len(opts.formats))

	var svg []byte
	needSVG := func() error {
		if svg != nil {
			return nil
		}
		spinner := newSpinnerWithContext(ctx, "Rendering with Graphviz...")
		spinner.Start()
		var err error
		svg, err = render.RenderSVG(ctx, dot)
		spinner.Stop()
		return err
	}

	for _, f := range opts.formats {
		switch f {
		case formatDOT:
			out[f] = []byte(dot)
		case formatSVG:
			if err := needSVG(); err != nil {
				return nil, err
			}
			out[f] = svg
		case formatPDF:
			if err := needSVG(); err != nil {
				return nil, err
			}
			pdf, err := render.ToPDF(ctx, svg)
			if err != nil {
				return nil, err
			}
			out[f] = pdf
		case formatPNG:
			if err := needSVG(); err != nil {
				return nil, err
			}
			png, err := render.ToPNG(ctx, svg, opts.scale)
			if err != nil {
				return nil, err
			}
			out[f] = png
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", f)
		}
	}
	return out, nil
}
