package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/io"
)

// Options configures joint-tree rendering.
type Options struct {
	// Detailed includes joint type, DOF count and body mass in node
	// labels. When false, only the joint name is shown.
	Detailed bool
}

// ToDOT converts a model document to Graphviz DOT format. The resulting
// DOT string can be rendered with [RenderSVG].
//
// Anchor joints are drawn with dashed outlines and grey fill to separate
// the rigid attachments from the actuated structure.
func ToDOT(doc *io.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, j := range doc.Joints {
		label := fmtLabel(j, opts.Detailed)
		attrs := fmtAttrs(j, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", j.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, j := range doc.Joints {
		if j.Parent != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", j.Parent, j.Name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(j io.JointRecord, detailed bool) string {
	if !detailed {
		return j.Name
	}

	parts := []string{fmt.Sprintf("type: %s", j.Type), fmt.Sprintf("dof: %d", len(j.DOF))}
	if j.Body != nil && j.Body.Mass > 0 {
		parts = append(parts, fmt.Sprintf("mass: %.3g", j.Body.Mass))
	}

	return j.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(j io.JointRecord, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if j.Type == "anchor" {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
