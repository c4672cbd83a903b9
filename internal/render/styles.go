package render

import "github.com/charmbracelet/glamour/styles"

// Markdown style names accepted in configuration
const (
	StyleDark       = styles.DarkStyle
	StyleLight      = styles.LightStyle
	StyleDracula    = styles.DraculaStyle
	StyleTokyoNight = styles.TokyoNightStyle
	StylePink       = styles.PinkStyle
	StyleNoTTY      = styles.NoTTYStyle
	StyleASCII      = styles.AsciiStyle
)

// styleAliases maps palette names onto the closest glamour style
var styleAliases = map[string]string{
	"tokyonight": StyleTokyoNight,
	"catppuccin": StyleDark,
	"nord":       StyleDark,
}

// NormalizeStyle resolves aliases. Unknown names are returned unchanged
// and treated as style file paths.
func NormalizeStyle(name string) string {
	if alias, ok := styleAliases[name]; ok {
		return alias
	}
	return name
}

// IsStandardStyle reports whether name is one of glamour's bundled styles
func IsStandardStyle(name string) bool {
	_, ok := styles.DefaultStyles[NormalizeStyle(name)]
	return ok
}

// StyleNames lists the bundled style names
func StyleNames() []string {
	return []string{StyleDark, StyleLight, StyleDracula, StyleTokyoNight, StylePink, StyleNoTTY, StyleASCII}
}
