package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/diogo/askbox/internal/api"
	"github.com/diogo/askbox/internal/chat"
	"github.com/diogo/askbox/internal/config"
	"github.com/diogo/askbox/internal/tui"
)

// ChatClient fetches credentials and completions. *api.Client implements it.
type ChatClient interface {
	chat.CredentialSource
	chat.Completer
}

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, session tui.ObservableSession, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client overrides the HTTP client built from configuration.
	Client ChatClient

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard copies text to the system clipboard.
	Clipboard func(string) error

	// IsTTY reports whether stdout is a terminal.
	IsTTY func() bool

	Stdout io.Writer
	Stderr io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, session tui.ObservableSession, opts tui.Options) error {
	return tui.RunChat(ctx, session, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:       &DefaultTUI{},
		Clipboard: clipboard.WriteAll,
		IsTTY:     isStdoutTTY,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// withDefaults fills any field left nil
func (d *Dependencies) withDefaults() *Dependencies {
	def := NewDependencies()
	if d == nil {
		return def
	}
	out := *d
	if out.TUI == nil {
		out.TUI = def.TUI
	}
	if out.Clipboard == nil {
		out.Clipboard = def.Clipboard
	}
	if out.IsTTY == nil {
		out.IsTTY = def.IsTTY
	}
	if out.Stdout == nil {
		out.Stdout = def.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = def.Stderr
	}
	return &out
}

// client returns the injected client or builds one from cfg
func (d *Dependencies) client(cfg config.Config, logger zerolog.Logger) (ChatClient, error) {
	if d.Client != nil {
		return d.Client, nil
	}
	client, err := api.NewClient(
		api.WithCredentialURL(cfg.CredentialURL),
		api.WithCompletionURL(cfg.CompletionURL),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}
	return client, nil
}

// newSession wires a chat session for cfg
func (d *Dependencies) newSession(cfg config.Config, logger zerolog.Logger, opts ...chat.Option) (*chat.Session, error) {
	client, err := d.client(cfg, logger)
	if err != nil {
		return nil, err
	}
	opts = append([]chat.Option{
		chat.WithFallbackKey(config.FallbackKey(cfg)),
		chat.WithLogger(logger),
	}, opts...)
	return chat.New(client, client, opts...), nil
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
