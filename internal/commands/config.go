package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/diogo/askbox/internal/config"
	"github.com/diogo/askbox/internal/render"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the current configuration",
		Long:  `Print the config file path and the effective configuration as JSON.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			cfg := loadConfig(deps.Stderr)

			data, err := json.MarshalIndent(redact(cfg), "", "  ")
			if err != nil {
				return errors.Wrap(err, "marshal config")
			}
			fmt.Fprintf(deps.Stdout, "# %s\n%s\n", path, data)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(deps.Stdout, "Config already exists at %s\n", path)
				return nil
			}
			save := config.SaveConfig
			if configFlag != "" {
				save = func(cfg config.Config) error { return config.SaveConfigTo(path, cfg) }
			}
			if err := save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "Wrote default config to %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List the tui_theme and markdown_style values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(deps.Stdout, "tui_theme:")
			for _, name := range render.PaletteNames() {
				fmt.Fprintf(deps.Stdout, "  %s\n", name)
			}
			fmt.Fprintln(deps.Stdout, "markdown_style:")
			for _, name := range render.StyleNames() {
				fmt.Fprintf(deps.Stdout, "  %s\n", name)
			}
			return nil
		},
	})

	return cmd
}

func configPath() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.GetConfigPath()
}

// redact hides the local key when printing
func redact(cfg config.Config) config.Config {
	if cfg.LocalAPIKey != "" {
		cfg.LocalAPIKey = "********"
	}
	return cfg
}
