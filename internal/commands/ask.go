package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/askbox/internal/chat"
	"github.com/diogo/askbox/internal/config"
	"github.com/diogo/askbox/internal/models"
	"github.com/diogo/askbox/internal/render"
	"github.com/diogo/askbox/internal/tui"
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)
)

type askOptions struct {
	file   string
	output string
	raw    bool
	copy   bool
}

func (o *askOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Save response to file")
	cmd.Flags().BoolVar(&o.raw, "raw", false, "Print only the reply text")
	cmd.Flags().BoolVar(&o.copy, "copy", false, "Copy the reply to the clipboard")
}

// NewAskCmd creates the one-shot ask command
func NewAskCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send a single question and print the reply",
		Long: `Send one question to the assistant and print the reply.

The prompt is read from --file, from piped stdin, or from the argument.
When stdout is not a terminal the reply is printed without styling.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, ok, err := readPrompt(cmd.InOrStdin(), opts.file, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}
			return runAsk(cmd.Context(), deps, prompt, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// reportedError has already been shown to the user
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// runAsk submits prompt once and prints the resulting assistant message.
// A failed submission still prints its notice, like the transcript would.
func runAsk(ctx context.Context, deps *Dependencies, prompt string, opts *askOptions) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return errors.New("prompt cannot be empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := loadConfig(deps.Stderr)

	// Quiet by default so log lines do not interleave with the spinner
	level := zerolog.WarnLevel
	if logLevelFlag != "" {
		level = parseZerologLevel(logLevelFlag)
	}
	logger := newConsoleLogger(deps.Stderr, level)

	var reply string
	observer := chat.ObserverFuncs{
		OnMessage: func(msg models.Message) {
			if !msg.IsUser() {
				reply = msg.Text
			}
		},
	}

	session, err := deps.newSession(cfg, logger, chat.WithObserver(observer))
	if err != nil {
		return err
	}

	raw := opts.raw || !deps.IsTTY()

	var spin *spinner
	if !raw {
		spin = newSpinner(deps.Stderr, "Thinking")
		spin.start()
	}

	submitErr := session.Submit(ctx, prompt)

	if spin != nil {
		if submitErr != nil {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess("Done")
		}
	}

	if err := writeReply(deps, cfg, reply, opts, raw); err != nil {
		return err
	}

	if submitErr != nil {
		if raw {
			return submitErr
		}
		fmt.Fprintln(deps.Stderr, tui.FormatError(submitErr))
		return reportedError{err: submitErr}
	}

	if opts.copy || cfg.CopyToClipboard {
		copyReply(deps, reply, raw)
	}
	return nil
}

func writeReply(deps *Dependencies, cfg config.Config, reply string, opts *askOptions, raw bool) error {
	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(reply), 0o644); err != nil {
			return errors.Wrap(err, "failed to write output file")
		}
		if !raw {
			msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Response saved to %s", opts.output),
			)
			fmt.Fprintln(deps.Stderr, msg)
		}
		return nil
	}

	if raw {
		fmt.Fprintln(deps.Stdout, render.Plain(reply))
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	renderOpts := render.LoadOptionsFromConfigWithWidth(cfg, bubbleWidth-4)

	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render("✦ Assistant"))
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(render.Message(reply, renderOpts)))
	return nil
}

func copyReply(deps *Dependencies, reply string, raw bool) {
	if err := deps.Clipboard(reply); err != nil {
		if !raw {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorWarning).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			))
		}
		return
	}
	if !raw {
		fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
	}
}
