package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/davidblanc347/parodesign/pkg/extract"
	"github.com/davidblanc347/parodesign/pkg/pipeline"
)

// chatCommand creates the interactive chat command.
func (c *CLI) chatCommand() *cobra.Command {
	var (
		direction string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		Long: `Chat with the assistant in the terminal.

Replies that carry a diagram are synthesized into shape batches and written
to chat-turn-<n>.batch.json in the working directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runChat(cmd.Context(), direction, noCache)
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "", "layout direction: TB (default), BT, LR, RL")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runChat(ctx context.Context, direction string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	model := chatModel{
		ctx:    ctx,
		runner: runner,
		opts:   c.pipelineOptions(direction, false),
	}
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// ChatModel - Interactive chat session
// =============================================================================

// turnDoneMsg carries one finished pipeline turn back into the update loop.
type turnDoneMsg struct {
	result *pipeline.Result
	err    error
}

// chatModel is the bubbletea model for the chat session.
type chatModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options

	transcript []string
	input      string
	waiting    bool
	turn       int
}

func (m chatModel) Init() tea.Cmd {
	return nil
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.waiting || strings.TrimSpace(m.input) == "" {
				return m, nil
			}
			prompt := m.input
			m.input = ""
			m.waiting = true
			m.turn++
			m.transcript = append(m.transcript, stylePrompt.Render("you ")+prompt)
			return m, m.runTurn(prompt)
		case "backspace":
			if len(m.input) > 0 {
				runes := []rune(m.input)
				m.input = string(runes[:len(runes)-1])
			}
		case " ":
			m.input += " "
		default:
			if msg.Type == tea.KeyRunes {
				m.input += string(msg.Runes)
			}
		}

	case turnDoneMsg:
		m.waiting = false
		if msg.err != nil {
			m.transcript = append(m.transcript, styleIconError.Render(iconError)+" "+msg.err.Error())
			return m, nil
		}
		m.transcript = append(m.transcript,
			styleResponse.Render(extract.StripMarkers(msg.result.Response)))
		if msg.result.Found {
			path := fmt.Sprintf("chat-turn-%d.batch.json", m.turn)
			if err := writeBatchFile(path, msg.result); err != nil {
				m.transcript = append(m.transcript, styleIconError.Render(iconError)+" "+err.Error())
			} else {
				m.transcript = append(m.transcript, StyleDim.Render(fmt.Sprintf(
					"  %s %d shapes, %d connectors %s %s",
					iconInfo, len(msg.result.Batch.Shapes), len(msg.result.Batch.Connectors), iconArrow, path)))
			}
		} else if msg.result.Rejected {
			m.transcript = append(m.transcript,
				StyleWarning.Render("  diagram block rejected, shown as plain text"))
		}
	}
	return m, nil
}

func (m chatModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("parodesign chat"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("enter send · esc quit"))
	b.WriteString("\n\n")

	for _, line := range m.transcript {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.waiting {
		b.WriteString(StyleDim.Render("thinking..."))
	} else {
		b.WriteString(stylePrompt.Render("> ") + m.input + "█")
	}
	b.WriteString("\n")

	return b.String()
}

func (m chatModel) runTurn(prompt string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.runner.RunTurn(m.ctx, prompt, m.opts)
		return turnDoneMsg{result: result, err: err}
	}
}

func writeBatchFile(path string, result *pipeline.Result) error {
	data, err := json.MarshalIndent(result.Batch, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
