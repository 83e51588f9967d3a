// Package render draws station blueprints as node-link diagrams.
//
// # Overview
//
// [ToDOT] turns the docking graph into Graphviz DOT: one node per structure
// and one undirected edge per docked port pair. Nodes are emitted in
// hierarchy order, so the output is stable for a given blueprint.
//
//   - The primary root is drawn with a double border
//   - Secondary roots are drawn bold
//   - With [Options.Clusters], each connected component gets its own box
//   - With [Options.Detailed], edges are labelled with both port names
//
// [RenderSVG] lays the DOT out with the embedded Graphviz library:
//
//	dot := render.ToDOT(bp, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output with the external rsvg-convert tool
// (from librsvg).
package render
