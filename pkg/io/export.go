package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/model"
)

// WriteJSON encodes a built robot as JSON and writes it to w.
// The output can be re-read with [ReadJSON].
func WriteJSON(r *model.Robot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromRobot(r)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a built robot to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(r *model.Robot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(r, f)
}
