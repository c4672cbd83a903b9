package render

import "testing"

func TestPalettes_HaveAllColors(t *testing.T) {
	for _, p := range palettes {
		t.Run(p.Name, func(t *testing.T) {
			if p.Description == "" {
				t.Error("description should not be empty")
			}
			colors := map[string]string{
				"Background": string(p.Background),
				"Surface":    string(p.Surface),
				"Border":     string(p.Border),
				"Primary":    string(p.Primary),
				"Secondary":  string(p.Secondary),
				"Accent":     string(p.Accent),
				"Warning":    string(p.Warning),
				"Error":      string(p.Error),
				"Text":       string(p.Text),
				"TextDim":    string(p.TextDim),
				"TextMute":   string(p.TextMute),
			}
			for field, value := range colors {
				if value == "" {
					t.Errorf("%s color should not be empty", field)
				}
			}
		})
	}
}

func TestPaletteByName(t *testing.T) {
	for _, name := range []string{"tokyonight", "catppuccin", "nord"} {
		p, ok := PaletteByName(name)
		if !ok {
			t.Errorf("PaletteByName(%q) not found", name)
			continue
		}
		if p.Name != name {
			t.Errorf("PaletteByName(%q).Name = %q", name, p.Name)
		}
	}

	if _, ok := PaletteByName("solarized"); ok {
		t.Error("expected unknown palette to be missing")
	}
}

func TestResolvePalette_Default(t *testing.T) {
	if got := ResolvePalette("unknown").Name; got != DefaultPalette {
		t.Errorf("ResolvePalette(unknown) = %s, want %s", got, DefaultPalette)
	}
	if got := ResolvePalette("nord").Name; got != "nord" {
		t.Errorf("ResolvePalette(nord) = %s", got)
	}
}

func TestPaletteNames(t *testing.T) {
	names := PaletteNames()
	if len(names) != len(palettes) {
		t.Fatalf("len(PaletteNames()) = %d, want %d", len(names), len(palettes))
	}
	if names[0] != DefaultPalette {
		t.Errorf("first palette = %s, want %s", names[0], DefaultPalette)
	}
}

func TestNormalizeStyle(t *testing.T) {
	tests := map[string]string{
		"tokyonight":        StyleTokyoNight,
		"catppuccin":        StyleDark,
		StyleLight:          StyleLight,
		"/path/custom.json": "/path/custom.json",
	}
	for in, want := range tests {
		if got := NormalizeStyle(in); got != want {
			t.Errorf("NormalizeStyle(%q) = %q, want %q", in, got, want)
		}
	}
	if !IsStandardStyle("tokyonight") {
		t.Error("tokyonight alias should be a standard style")
	}
	if IsStandardStyle("/path/custom.json") {
		t.Error("file path should not be a standard style")
	}
}
