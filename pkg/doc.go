// Package pkg provides the libraries behind hellion-blueprint, a toolkit for
// station blueprint documents: the docking topology of a space station built
// from catalog structures joined port to port.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Domain: [catalog], [blueprint] and [io] load, check, edit and write
//     blueprints
//  2. Output: [render] draws the docking graph
//  3. Service: [store], [server] and [observability] serve blueprints over HTTP
//
// # Architecture
//
// The typical data flow:
//
//	StationBlueprint JSON
//	         ↓
//	    [io] package (decode + validate the document)
//	         ↓
//	    [blueprint] package (reconstruct the docking graph, repair legacy ports)
//	         ↓
//	    mutations: add, remove, dock, undock
//	         ↓
//	    [blueprint] package (linearize the hierarchy forest)
//	         ↓
//	    JSON / DOT / SVG / PDF / PNG output
//
// # Quick Start
//
// Load a blueprint, dock a new module and save it:
//
//	cat := catalog.Default()
//	bp, repairs, err := io.ImportJSON("station.json", cat)
//	if err != nil {
//	    return err
//	}
//	for _, r := range repairs {
//	    log.Warn("repaired", "repair", r)
//	}
//
//	scene, _ := cat.Resolve("LSM")
//	lsm, _ := bp.AddStructure(scene)
//	status := bp.DockPorts(bp.Port(0, "StandardDockingPortB"), lsm.Port("StandardDockingPortA"))
//	if err := status.Err(); err != nil {
//	    return err
//	}
//	return io.ExportJSON(bp, "station.json")
//
// # Main Packages
//
// [catalog] - Structure definitions: the port slots of each structure type,
// mapping port names to order indices and back. An embedded default covers
// the stock modules.
//
// [blueprint] - The docking graph. Structures own ports; docked ports reference
// each other. Every connected group of structures is a tree with exactly one
// hierarchy root, and the primary structure is the root of its own group.
// Mutations return a [blueprint.Status] and never leave the graph invalid.
//
// [io] - JSON import and export of blueprint documents.
//
// [render] - Graphviz DOT export and SVG rendering, with PDF and PNG
// conversion through rsvg-convert.
//
// [store] - Blueprint document stores: memory, file, Redis and MongoDB.
//
// [server] - HTTP editing service with one mutation in flight per document.
//
// [observability] - Load, save, mutation and request hooks with a Prometheus
// implementation.
//
// [errors] - Coded errors shared by every package.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/blueprint/...          # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Redis and MongoDB store tests run when HELLION_TEST_REDIS_ADDR or
// HELLION_TEST_MONGO_URI is set.
//
// [catalog]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog
// [blueprint]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint
// [blueprint.Status]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint#Status
// [io]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/io
// [render]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/render
// [store]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/store
// [server]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/server
// [observability]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/observability
// [errors]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/buildinfo
package pkg
