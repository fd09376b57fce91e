package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/florent-lamiraux/hpp-model-urdf/pkg/io"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/render"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (derived from input if empty)
	format   string // output format: "svg" or "dot"
	detailed bool   // include joint type, DOF count and mass in labels
}

// newRenderCmd creates the render command for generating joint-tree
// diagrams from a built model document.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render <model.json>",
		Short: "Render a built model as a joint-tree diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from input if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show joint type, DOF count and mass in labels")

	return cmd
}

// validateFormat checks that the format is either "svg" or "dot".
func validateFormat(f string) error {
	if f != formatSVG && f != formatDOT {
		return fmt.Errorf("invalid format: %s (must be 'svg' or 'dot')", f)
	}
	return nil
}

// outputPath derives the output file path from the flags and input path.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// runRender loads the model document from input and renders the joint
// tree to the requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	doc, err := pkgio.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded model %s: %d joints", doc.Name, len(doc.Joints))

	dot := render.ToDOT(doc, render.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		spin := newSpinner(ctx, "Rendering SVG")
		spin.Start()
		data, err = render.RenderSVG(dot)
		spin.Stop()
		if spin.Cancelled() {
			return ctx.Err()
		}
		if err != nil {
			return err
		}
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(opts.output, input, opts.format)
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}

	printSuccess("Generated %s", path)
	return nil
}
