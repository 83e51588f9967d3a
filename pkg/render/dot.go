package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// Options configures blueprint diagram rendering.
type Options struct {
	// Detailed labels edges with the port names on each end and adds the
	// scene id to node labels. When false, nodes show "<type> #<id>" only.
	Detailed bool
	// Clusters draws each connected component inside its own box.
	Clusters bool
}

// ToDOT converts a blueprint to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// ToDOT linearizes the blueprint and therefore panics with
// *blueprint.InvariantError on a graph whose forest invariant is broken.
func ToDOT(bp *blueprint.Blueprint, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")

	for i, root := range bp.Forest() {
		indent := "  "
		buf.WriteString("\n")
		if opts.Clusters {
			fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
			fmt.Fprintf(&buf, "    label=%q;\n", componentLabel(root))
			buf.WriteString("    style=dashed;\n")
			indent = "    "
		}

		var edges []string
		root.Walk(func(n *blueprint.Node, _ int) bool {
			s := n.Structure
			fmt.Fprintf(&buf, "%s%s [%s];\n", indent, nodeID(s), strings.Join(nodeAttrs(s, opts.Detailed), ", "))
			for _, pn := range n.Ports {
				if pn.Child != nil {
					edges = append(edges, fmtEdge(pn.Port, pn.Child.Via, opts.Detailed))
				}
			}
			return true
		})
		for _, e := range edges {
			buf.WriteString(indent + e + ";\n")
		}

		if opts.Clusters {
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(s *blueprint.Structure) string {
	return "s" + strconv.Itoa(s.ID())
}

func componentLabel(root *blueprint.Node) string {
	if root.Structure.IsPrimaryRoot() {
		return "primary"
	}
	return "secondary " + root.Structure.String()
}

func nodeAttrs(s *blueprint.Structure, detailed bool) []string {
	label := fmt.Sprintf("%s #%d", s.Type(), s.ID())
	if detailed {
		label += fmt.Sprintf("\nscene %d", s.SceneID())
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case s.IsPrimaryRoot():
		attrs = append(attrs, "peripheries=2", "fillcolor=lightyellow")
	case s.IsHierarchyRoot():
		attrs = append(attrs, "style=\"rounded,filled,bold\"")
	}
	return attrs
}

func fmtEdge(from, to *blueprint.Port, detailed bool) string {
	e := fmt.Sprintf("%s -- %s", nodeID(from.Owner()), nodeID(to.Owner()))
	if !detailed {
		return e
	}
	return fmt.Sprintf("%s [taillabel=%q, headlabel=%q]", e, shortPort(from), shortPort(to))
}

// shortPort drops the common "StandardDockingPort" prefix for compact labels.
func shortPort(p *blueprint.Port) string {
	name := string(p.Name())
	if s, ok := strings.CutPrefix(name, "StandardDockingPort"); ok && s != "" {
		return s
	}
	return name
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from the
// origin regardless of the Graphviz page offset.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
