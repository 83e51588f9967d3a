package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// ReadJSON decodes a blueprint document from r and reconstructs it against
// cat.
//
// ReadJSON returns an error if:
//   - The JSON is malformed (INVALID_FORMAT)
//   - The document fails validation, e.g. a wrong "__ObjectType" or a
//     structure without "StructureID" (INVALID_FORMAT, INVALID_INPUT)
//   - The document cannot form a valid graph (see [blueprint.Reconstruct])
//
// Repairs made to legacy port data are returned alongside the blueprint.
// ReadJSON does not close r.
func ReadJSON(r io.Reader, cat *catalog.Catalog) (*blueprint.Blueprint, []blueprint.Repair, error) {
	doc, err := ReadDocument(r)
	if err != nil {
		return nil, nil, err
	}
	return blueprint.Reconstruct(doc, cat)
}

// Unmarshal is ReadJSON over a byte slice.
func Unmarshal(data []byte, cat *catalog.Catalog) (*blueprint.Blueprint, []blueprint.Repair, error) {
	return ReadJSON(bytes.NewReader(data), cat)
}

// ReadDocument decodes and validates a blueprint document without
// reconstructing the graph.
func ReadDocument(r io.Reader) (*blueprint.Document, error) {
	var doc blueprint.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode blueprint")
	}
	if err := ValidateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ImportJSON reads a blueprint file at path and reconstructs it.
//
// A missing file is reported as FILE_NOT_FOUND; otherwise ImportJSON
// returns the same errors as [ReadJSON].
func ImportJSON(path string, cat *catalog.Catalog) (*blueprint.Blueprint, []blueprint.Repair, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f, cat)
}
