// Package commands provides CLI commands for askbox.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/diogo/askbox/internal/config"
)

var (
	// Global flags
	configFlag   string
	logLevelFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd builds the command tree over deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	askFlags := &askOptions{}

	cmd := &cobra.Command{
		Use:   "askbox [prompt]",
		Short: "Ask an AI assistant from the terminal",
		Long: `askbox is a small chat client for an OpenAI-compatible completion API.
The API key comes from a credential provider (askbox serve), falling back to
local_api_key in the config file.

Examples:
  askbox serve                          Run the credential provider on :8888
  askbox chat                           Start interactive chat
  askbox "What is the capital of France?"
  askbox ask -f prompt.md               Read prompt from file
  cat prompt.md | askbox                Read prompt from stdin
  askbox config                         Show configuration`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "askbox %s (built %s)\n", Version, BuildTime)
				return nil
			}

			prompt, ok, err := readPrompt(cmd.InOrStdin(), askFlags.file, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}
			return runAsk(cmd.Context(), deps, prompt, askFlags)
		},
	}

	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.askbox/config.json)")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")
	askFlags.register(cmd)

	cmd.AddCommand(NewServeCmd(deps))
	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewAskCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(nil)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads --config or the default config file. A malformed file
// is reported on stderr and the defaults are used.
func loadConfig(stderr io.Writer) config.Config {
	var (
		cfg config.Config
		err error
	)
	if configFlag != "" {
		cfg, err = config.LoadConfigFrom(configFlag)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// readPrompt takes the prompt from a file, piped stdin or the first argument,
// in that order. Blank stdin gives way to an argument. ok is false when there
// is no input at all.
func readPrompt(stdin io.Reader, file string, args []string) (string, bool, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, errors.Wrap(err, "failed to read file")
		}
		return string(data), true, nil
	}

	if hasPipedInput(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, errors.Wrap(err, "failed to read stdin")
		}
		// An empty stdin (cron, CI, < /dev/null) leaves the argument in charge
		if strings.TrimSpace(string(data)) != "" || len(args) == 0 {
			return string(data), true, nil
		}
	}

	if len(args) > 0 {
		return args[0], true, nil
	}
	return "", false, nil
}

// hasPipedInput reports whether stdin is something other than a terminal.
// Readers that are not files were injected and count as piped.
func hasPipedInput(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return stdin != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
