package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// WriteJSON encodes the blueprint as an indented JSON document and writes it
// to w. The output can be re-imported with [ReadJSON].
func WriteJSON(bp *blueprint.Blueprint, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bp.Document()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode blueprint")
	}
	return nil
}

// Marshal returns the JSON document of the blueprint.
func Marshal(bp *blueprint.Blueprint) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(bp, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes the blueprint to path, replacing the file atomically,
// and marks the blueprint clean on success.
func ExportJSON(bp *blueprint.Blueprint, path string) error {
	data, err := Marshal(bp)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".blueprint-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create temp file for %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "rename to %s", path)
	}
	bp.MarkClean()
	return nil
}
