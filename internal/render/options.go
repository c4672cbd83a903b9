// Package render turns transcript text into terminal output.
package render

// Options configures the markdown renderer.
type Options struct {
	// Width is the wrap column
	Width int

	// Style is a glamour standard style name or a path to a JSON style file
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool

	// PreserveNewLines keeps every \n in the reply as a line break
	PreserveNewLines bool

	// TableWrap word-wraps table cells
	TableWrap bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
