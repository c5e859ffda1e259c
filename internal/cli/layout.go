package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidblanc347/parodesign/pkg/graph"
	"github.com/davidblanc347/parodesign/pkg/layout"
)

// layoutCommand creates the layout command for computing diagram layouts
// from graph files.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		direction   string
		noCache     bool
		nodeSpacing float64
		rankSpacing float64
	)

	cmd := &cobra.Command{
		Use:   "layout <graph.json>",
		Short: "Compute a deterministic layered layout and shape batch",
		Long: `Compute a deterministic layered layout and shape batch.

The input is a graph document with nodes and edges; it goes through full
validation before layout. The output file contains the positioned layout and
the drawable shape batch. The same graph and options always produce the same
geometry.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayoutCmd(cmd.Context(), args[0], output, direction, nodeSpacing, rankSpacing, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "layout direction: TB (default), BT, LR, RL")
	cmd.Flags().Float64Var(&nodeSpacing, "node-spacing", 0, "gap between nodes within a rank")
	cmd.Flags().Float64Var(&rankSpacing, "rank-spacing", 0, "gap between ranks")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayoutCmd(ctx context.Context, input, output, direction string, nodeSpacing, rankSpacing float64, noCache bool) error {
	m, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions(direction, false)
	if nodeSpacing > 0 {
		opts.Layout.NodeSpacing = nodeSpacing
	}
	if rankSpacing > 0 {
		opts.Layout.RankSpacing = rankSpacing
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	res, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	batch, _, err := runner.SynthesizeWithCacheInfo(ctx, res, opts)
	if err != nil {
		spinner.StopWithError("Synthesis failed")
		return fmt.Errorf("synthesize batch: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	doc := struct {
		Layout layout.Result `json:"layout"`
		Batch  any           `json:"batch"`
	}{Layout: res, Batch: batch}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize layout: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(m.Nodes), len(m.Edges), cacheHit)
	printNewline()
	printNextStep("Preview", "parodesign preview "+input)

	return nil
}

// layoutDirection normalizes a direction flag value.
func layoutDirection(s string) layout.Direction {
	return layout.Direction(strings.ToUpper(strings.TrimSpace(s)))
}
