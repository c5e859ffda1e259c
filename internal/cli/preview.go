package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidblanc347/parodesign/pkg/errors"
	"github.com/davidblanc347/parodesign/pkg/graph"
	"github.com/davidblanc347/parodesign/pkg/layout"
	"github.com/davidblanc347/parodesign/pkg/render"
)

// Preview output formats.
const (
	formatSVG     = "svg"
	formatPNG     = "png"
	formatPDF     = "pdf"
	formatDOT     = "dot"
	formatMermaid = "mermaid"
)

// pngScale is the raster scale for PNG previews; 2x suits high-DPI displays.
const pngScale = 2.0

// previewCommand creates the preview command for rendering graph files to
// viewable formats.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output    string
		format    string
		direction string
	)

	cmd := &cobra.Command{
		Use:   "preview <graph.json>",
		Short: "Render a graph to SVG, PNG, PDF, DOT, or Mermaid",
		Long: `Render a graph to SVG, PNG, PDF, DOT, or Mermaid.

SVG previews are produced through Graphviz and approximate the deterministic
layout; PNG and PDF are converted from SVG and require librsvg. DOT and
Mermaid outputs are sources for external renderers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], output, format, direction)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg (default), png, pdf, dot, mermaid")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "layout direction: TB (default), BT, LR, RL")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input, output, format, direction string) error {
	m, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	opts := c.pipelineOptions(direction, false)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	dir := opts.Layout.Direction

	var data []byte
	ext := format
	switch format {
	case formatSVG:
		res := layout.Layout(m, opts.Layout)
		svg, err := render.RenderSVG(render.ToDOT(res, dir))
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		data = svg
	case formatPNG, formatPDF:
		res := layout.Layout(m, opts.Layout)
		svg, err := render.RenderSVG(render.ToDOT(res, dir))
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		if format == formatPNG {
			data, err = render.ToPNG(svg, pngScale)
		} else {
			data, err = render.ToPDF(svg)
		}
		if err != nil {
			return fmt.Errorf("convert %s: %w", format, err)
		}
	case formatDOT:
		res := layout.Layout(m, opts.Layout)
		data = []byte(render.ToDOT(res, dir))
	case formatMermaid:
		data = []byte(render.ToMermaid(m, dir))
		ext = "mmd"
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown preview format %q", format)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + ext
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Preview written")
	printFile(outputPath)
	return nil
}
