package render

import (
	"os"

	"github.com/diogo/askbox/internal/config"
)

// LoadOptionsFromConfig builds render options from cfg.
// GLAMOUR_STYLE overrides the configured markdown style.
func LoadOptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	if cfg.MarkdownStyle != "" {
		opts = opts.WithStyle(cfg.MarkdownStyle)
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts = opts.WithStyle(style)
	}
	return opts
}

// LoadOptionsFromConfigWithWidth is LoadOptionsFromConfig at a fixed width.
func LoadOptionsFromConfigWithWidth(cfg config.Config, width int) Options {
	return LoadOptionsFromConfig(cfg).WithWidth(width)
}
