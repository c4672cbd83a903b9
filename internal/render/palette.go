package render

import "github.com/charmbracelet/lipgloss"

// Palette is the colour set of the chat TUI
type Palette struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// DefaultPalette is used when the configured name is unknown
const DefaultPalette = "tokyonight"

var palettes = []Palette{
	{
		Name:        "tokyonight",
		Description: "Tokyo Night, dark with blue accents",
		Background:  "#1a1b26",
		Surface:     "#24283b",
		Border:      "#414868",
		Primary:     "#7aa2f7",
		Secondary:   "#9ece6a",
		Accent:      "#bb9af7",
		Warning:     "#e0af68",
		Error:       "#f7768e",
		Text:        "#c0caf5",
		TextDim:     "#565f89",
		TextMute:    "#3b4261",
	},
	{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha, warm pastels",
		Background:  "#1e1e2e",
		Surface:     "#313244",
		Border:      "#45475a",
		Primary:     "#89b4fa",
		Secondary:   "#a6e3a1",
		Accent:      "#cba6f7",
		Warning:     "#f9e2af",
		Error:       "#f38ba8",
		Text:        "#cdd6f4",
		TextDim:     "#6c7086",
		TextMute:    "#45475a",
	},
	{
		Name:        "nord",
		Description: "Nord, cool arctic tones",
		Background:  "#2e3440",
		Surface:     "#3b4252",
		Border:      "#4c566a",
		Primary:     "#88c0d0",
		Secondary:   "#a3be8c",
		Accent:      "#b48ead",
		Warning:     "#ebcb8b",
		Error:       "#bf616a",
		Text:        "#eceff4",
		TextDim:     "#7b88a1",
		TextMute:    "#4c566a",
	},
}

// PaletteByName looks a palette up by name
func PaletteByName(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// ResolvePalette returns the named palette or the default one
func ResolvePalette(name string) Palette {
	if p, ok := PaletteByName(name); ok {
		return p
	}
	p, _ := PaletteByName(DefaultPalette)
	return p
}

// PaletteNames returns the built-in palette names
func PaletteNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}
