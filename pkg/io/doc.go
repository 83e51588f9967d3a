// Package io provides JSON import and export for station blueprints.
//
// # Overview
//
// Blueprints are stored as flat JSON documents in which every structure
// carries its own id and every port names its partner by structure id and
// port name. This package decodes such documents, checks their shape, and
// hands them to [blueprint.Reconstruct]; on the way out it asks the
// blueprint for its linearized [blueprint.Document] and encodes that.
//
// # JSON Format
//
//	{
//	  "__ObjectType": "StationBlueprint",
//	  "Version": 0.04,
//	  "Name": "Outpost",
//	  "LinkURI": null,
//	  "Structures": [
//	    {
//	      "StructureID": 0,
//	      "StructureType": "CIR",
//	      "NominalAirVolume": 310.0,
//	      "StandbyPowerRequirement": 2.0,
//	      "DockingPorts": [
//	        {"PortName": "StandardDockingPortA", "OrderID": 1, "Locked": false,
//	         "DockedStructureID": 1, "DockedPortName": "StandardDockingPortA"}
//	      ]
//	    }
//	  ]
//	}
//
// "__ObjectType" must be "StationBlueprint" and every structure needs a
// "StructureID" and a "StructureType" known to the catalog. Ports may carry
// only one of "PortName" and "OrderID"; the reconstruction fills in the
// other half and reports it as a repair.
//
// # Import
//
// Use [ImportJSON] to read a blueprint from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	bp, repairs, err := io.ImportJSON("outpost.json", catalog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range repairs {
//	    log.Warn("repaired", "what", r)
//	}
//
// Errors carry codes from [errors]: INVALID_FORMAT for malformed JSON or a
// document failing struct validation, and the reconstruction codes
// (UNKNOWN_STRUCTURE_TYPE, MISSING_ROOT_STRUCTURE, CORRUPT_DOCKING, ...) for
// documents that cannot form a valid graph.
//
// # Export
//
// Use [ExportJSON] to write a blueprint to a file, or [WriteJSON] to write
// to any io.Writer. Structures are written in hierarchy order (primary
// tree first, then each secondary tree) and ports in ascending order
// index, so exporting a freshly imported blueprint is stable.
//
// # Concurrency
//
// Import functions create independent blueprints. Export functions only read
// the blueprint and must not run concurrently with mutations of it.
//
// [errors]: github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors
package io
