// Package catalog provides the static table of structure types and the
// docking port slots each type declares.
//
// # Overview
//
// Every structure in a blueprint has a type, identified by a [SceneID] and a
// short display name such as "CIR" or "LSM". The catalog records, per type,
// which docking ports exist and the canonical order index of each one. The
// name and the order index of a slot are a bijection within one definition:
// [Catalog.PortNameFor] and [Catalog.OrderIndexFor] are inverses for every
// declared slot.
//
// # Unspecified Results
//
// Lookups never fail loudly. Blueprints written by older tools can reference
// retired types or ports, so an absent combination yields [PortUnspecified]
// or [OrderUnspecified] and callers decide whether to repair or reject.
//
//	cat := catalog.Default()
//	id, _ := cat.Resolve("CIR")
//	cat.PortNameFor(id, 2)                          // "StandardDockingPortB"
//	cat.OrderIndexFor(id, "StandardDockingPortZ")   // catalog.OrderUnspecified
//
// # Loading
//
// [Default] decodes the definitions file embedded in the binary. [Read] and
// [Load] decode a replacement file with the same document shape as a
// blueprint; docking state fields in that file are ignored.
//
// # Concurrency
//
// A Catalog is immutable once built and safe for concurrent use.
package catalog
