package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a model document from r and validates it: joint names
// must be unique, every parent reference must resolve to a declared
// joint, and exactly one joint (the declared root) may lack a parent.
//
// The returned Document is a plain data view of the model; it does not
// rebuild engine state. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if len(doc.Joints) == 0 {
		return nil, fmt.Errorf("document has no joints")
	}

	names := make(map[string]bool, len(doc.Joints))
	for _, j := range doc.Joints {
		if j.Name == "" {
			return nil, fmt.Errorf("joint with empty name")
		}
		if names[j.Name] {
			return nil, fmt.Errorf("duplicate joint %s", j.Name)
		}
		names[j.Name] = true
	}

	roots := 0
	for _, j := range doc.Joints {
		if j.Parent == "" {
			roots++
			if j.Name != doc.Root {
				return nil, fmt.Errorf("joint %s has no parent but root is %s", j.Name, doc.Root)
			}
			continue
		}
		if !names[j.Parent] {
			return nil, fmt.Errorf("joint %s: unknown parent %s", j.Name, j.Parent)
		}
	}
	if roots != 1 {
		return nil, fmt.Errorf("document has %d roots, want exactly 1", roots)
	}

	for _, g := range doc.Geometry {
		if !names[g.Joint] {
			return nil, fmt.Errorf("geometry %s: unknown joint %s", g.Name, g.Joint)
		}
	}

	return &doc, nil
}

// ImportJSON reads a JSON file at path and returns the decoded document.
// It returns the same validation errors as [ReadJSON].
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
