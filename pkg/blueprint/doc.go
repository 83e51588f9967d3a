// Package blueprint provides the station blueprint docking graph.
//
// # Overview
//
// A station blueprint is a set of structures (modules or vessels) joined
// through typed docking ports. Structures are nodes, and a docked pair of
// ports is an undirected edge between two structures. The package keeps that
// graph consistent while it is edited, rebuilds it from the flat, id-indexed
// document format and linearizes it back into a deterministic tree.
//
// # Invariants
//
// The following hold for every [Blueprint] after a successful mutation:
//
//   - Exactly one structure has id 0. It is the primary root.
//   - Docking is mutual: if port p is docked to q, then q is docked to p.
//   - Port names and order indices agree with the [catalog.Catalog].
//   - Docked edges form a forest. Every connected component holds exactly
//     one hierarchy root: the primary root or one secondary root.
//
// [Blueprint.Validate] checks all of them and reports the first violation as
// a coded error. Operations that find them already broken panic with an
// [*InvariantError], because a broken forest means the engine itself is wrong.
//
// # Editing
//
// The four mutations are [Blueprint.AddStructure], [Blueprint.RemoveStructure],
// [Blueprint.DockPorts] and [Blueprint.UndockPort]. Each returns a [Status]
// and either applies fully or leaves the graph unchanged:
//
//	g := blueprint.New(catalog.Default())
//	hub, _ := g.AddStructure(cirID)
//	arm, _ := g.AddStructure(ctrID)
//	st := g.DockPorts(hub.Port("StandardDockingPortA"), arm.Port("StandardDockingPortB"))
//	if st != blueprint.Success {
//	    return st.Err()
//	}
//
// By convention portA is the upstream side and portB the side being attached.
//
// # Documents
//
// [Reconstruct] builds a Blueprint from a [Document] in two passes: nodes
// first, then edges, because ports may reference structures that appear later
// in the file. Stale port data is repaired against the catalog and every
// repair is reported. [Blueprint.Document] produces the document again from
// [Blueprint.Flatten], the same traversal that drives [Blueprint.Forest], so
// the displayed tree and the saved file never disagree.
//
// # Concurrency
//
// A Blueprint is not safe for concurrent use. Callers that share one
// document between goroutines must serialize all access to it.
package blueprint
