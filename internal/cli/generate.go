package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidblanc347/parodesign/pkg/extract"
	"github.com/davidblanc347/parodesign/pkg/graph"
)

// generateCommand creates the generate command: one assistant turn from the
// terminal.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output    string
		graphOut  string
		direction string
		noCache   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "generate <description>",
		Short: "Ask the assistant for a diagram and synthesize a shape batch",
		Long: `Ask the assistant for a diagram and synthesize a shape batch.

The description is sent to the language model together with instructions to
embed a machine-readable graph in its reply. When the reply carries a valid
diagram the layout and shape batch are computed and written as JSON; a reply
without a diagram is printed as plain chat.

Requires an API key in OPENAI_API_KEY or assistant.api_key in the config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), strings.Join(args, " "), output, graphOut, direction, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "diagram.batch.json", "output file for the shape batch")
	cmd.Flags().StringVar(&graphOut, "graph", "", "also write the extracted graph to this file")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "layout direction: TB (default), BT, LR, RL")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached layout and batch results")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, description, output, graphOut, direction string, noCache, refresh bool) error {
	runner, err := c.newRunner(ctx, noCache, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Asking the assistant...")
	spinner.Start()

	result, err := runner.RunTurn(ctx, description, c.pipelineOptions(direction, refresh))
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	fmt.Println(styleResponse.Render(extract.StripMarkers(result.Response)))
	printNewline()

	if !result.Found {
		if result.Rejected {
			printWarning("The assistant emitted a diagram block but it failed validation")
		} else {
			printInfo("No diagram in this reply")
		}
		return nil
	}

	data, err := json.MarshalIndent(result.Batch, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize batch: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if graphOut != "" {
		if err := graph.WriteFile(result.Model, graphOut); err != nil {
			return fmt.Errorf("write graph %s: %w", graphOut, err)
		}
		printFile(graphOut)
	}

	printSuccess("Diagram generated")
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	if graphOut != "" {
		printNewline()
		printNextStep("Preview", "parodesign preview "+graphOut)
	}

	return nil
}
