package forecast

// Palette defines the color scheme for a coarse condition by day or night.
type Palette struct {
	// Background is the main card background color
	Background string
	// Panel is the background of inset panels
	Panel string
	// Text is the primary text color
	Text string
	// TextMuted is the secondary/muted text color
	TextMuted string
	// Accent highlights the forecast headline
	Accent string
}

// DefaultPalette is the fallback dark theme.
var DefaultPalette = Palette{
	Background: "#0f0f1a",
	Panel:      "#1a1a2e",
	Text:       "#eeeeee",
	TextMuted:  "#8a8aa0",
	Accent:     "#4fc3f7",
}

// palettes is indexed [condition][0 day, 1 night], in the same order as the
// icon table.
var palettes = [7][2]Palette{
	CondSunny: {
		{Background: "#f5f0e8", Panel: "#ffffff", Text: "#2a2520", TextMuted: "#706050", Accent: "#d07020"},
		{Background: "#0a0e1a", Panel: "#141a2a", Text: "#e8ecf8", TextMuted: "#7080a0", Accent: "#8aa8e0"},
	},
	CondPartlyCloudy: {
		{Background: "#e8eef4", Panel: "#f8fafc", Text: "#1c2630", TextMuted: "#5a6a7a", Accent: "#3078b0"},
		{Background: "#0c1018", Panel: "#161c28", Text: "#e0e6f0", TextMuted: "#6a7890", Accent: "#7898c8"},
	},
	CondPartlyRainy: {
		{Background: "#dde4ea", Panel: "#eef2f6", Text: "#1a2430", TextMuted: "#506070", Accent: "#2a70a0"},
		{Background: "#0a0e14", Panel: "#141a22", Text: "#d8e0ea", TextMuted: "#607088", Accent: "#6a90b8"},
	},
	CondCloudy: {
		{Background: "#d4d8dc", Panel: "#e6e8ea", Text: "#202428", TextMuted: "#5a6066", Accent: "#4a6a88"},
		{Background: "#101214", Panel: "#1a1d20", Text: "#dcdfe2", TextMuted: "#70767c", Accent: "#8098b0"},
	},
	CondRainy: {
		{Background: "#c8d0d8", Panel: "#dce2e8", Text: "#18202a", TextMuted: "#4a5664", Accent: "#205c90"},
		{Background: "#080c10", Panel: "#12181e", Text: "#d4dce4", TextMuted: "#5a6878", Accent: "#5a88b0"},
	},
	CondPouring: {
		{Background: "#3a4450", Panel: "#48525e", Text: "#eef2f6", TextMuted: "#a8b4c0", Accent: "#80b8e8"},
		{Background: "#06080c", Panel: "#10141a", Text: "#d0d8e0", TextMuted: "#566474", Accent: "#5080a8"},
	},
	CondLightningRainy: {
		{Background: "#2a2838", Panel: "#383648", Text: "#f0eef8", TextMuted: "#a8a4c0", Accent: "#e0c040"},
		{Background: "#06050c", Panel: "#100e18", Text: "#dcd8ea", TextMuted: "#60587a", Accent: "#c8a830"},
	},
}

// GetPalette returns the palette for a coarse condition (see the Cond
// constants) by day or night.
func GetPalette(condition int, isNight bool) Palette {
	if condition < 0 || condition >= len(palettes) {
		return DefaultPalette
	}
	if isNight {
		return palettes[condition][1]
	}
	return palettes[condition][0]
}
