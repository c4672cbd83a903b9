package commands

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/diogo/askbox/internal/config"
	"github.com/diogo/askbox/internal/render"
	"github.com/diogo/askbox/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

Each message is answered on its own; no context is carried between messages.
Type 'exit', 'quit', or press Esc or Ctrl+C to end the session.
Logs go to ~/.askbox/askbox.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), deps)
		},
	}
}

func runChat(ctx context.Context, deps *Dependencies) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := loadConfig(deps.Stderr)

	logPath, err := config.GetLogPath()
	if err != nil {
		return errors.Wrap(err, "resolve log path")
	}
	logger, closer, err := newFileLogger(logPath, logLevel(cfg))
	if err != nil {
		return err
	}
	defer closer.Close()

	session, err := deps.newSession(cfg, logger)
	if err != nil {
		return err
	}

	// Fetch the key while the UI starts, like a page-load bootstrap
	session.Start(ctx)

	opts := tui.DefaultOptions()
	opts.Palette = cfg.TUITheme
	opts.Markdown = render.LoadOptionsFromConfig(cfg)
	opts.Logger = logger

	logger.Info().Str("credential_url", cfg.CredentialURL).Msg("chat session started")
	if err := deps.TUI.RunChat(ctx, session, opts); err != nil {
		return errors.Wrap(err, "chat UI")
	}
	return nil
}
