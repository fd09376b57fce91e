package render

import (
	"strings"
	"testing"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/io"
)

func sampleDocument() *io.Document {
	return &io.Document{
		Name: "arm",
		Root: "base_joint",
		Joints: []io.JointRecord{
			{Name: "base_joint", Type: "freeflyer", DOF: make([]io.DOFRecord, 6)},
			{Name: "shoulder", Type: "rotation", Parent: "base_joint",
				DOF:  []io.DOFRecord{{Bounded: true, Lower: -1, Upper: 1}},
				Body: &io.BodyRecord{Mass: 2.5}},
			{Name: "mount", Type: "anchor", Parent: "shoulder"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleDocument(), Options{})

	for _, want := range []string{
		`"base_joint"`,
		`"shoulder"`,
		`"base_joint" -> "shoulder";`,
		`"shoulder" -> "mount";`,
		"digraph G {",
		"rankdir=TB;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	// Anchor joints carry the dashed style.
	if !strings.Contains(dot, "dashed") {
		t.Error("anchor joint not styled dashed")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleDocument(), Options{Detailed: true})

	for _, want := range []string{"type: rotation", "dof: 1", "mass: 2.5", "type: freeflyer", "dof: 6"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT output missing %q", want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>
<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	got := string(normalizeViewBox(svg))
	if !strings.Contains(got, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", got)
	}
	if !strings.Contains(got, `width="100" height="50"`) {
		t.Errorf("pixel dimensions not set: %s", got)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	svg := []byte("<svg></svg>")
	if got := normalizeViewBox(svg); string(got) != "<svg></svg>" {
		t.Errorf("SVG without viewBox modified: %s", got)
	}
}
