package render

// Theme is a named color palette for the HTML digest.
type Theme struct {
	Name           string
	PrimaryColor   string
	Background     string
	CardBackground string
	TextColor      string
	MutedColor     string
	CardPadding    string
}

// DefaultTheme is used when the requested theme is unknown.
const DefaultTheme = "default"

var themes = map[string]Theme{
	"default": {
		Name:           "default",
		PrimaryColor:   "#006aff",
		Background:     "#f7f9fc",
		CardBackground: "#ffffff",
		TextColor:      "#1a1f36",
		MutedColor:     "#8792a2",
		CardPadding:    "40px",
	},
	"dark": {
		Name:           "dark",
		PrimaryColor:   "#4d9fff",
		Background:     "#11141b",
		CardBackground: "#1b2029",
		TextColor:      "#e8ecf3",
		MutedColor:     "#7a8699",
		CardPadding:    "40px",
	},
	"compact": {
		Name:           "compact",
		PrimaryColor:   "#006aff",
		Background:     "#ffffff",
		CardBackground: "#ffffff",
		TextColor:      "#1a1f36",
		MutedColor:     "#8792a2",
		CardPadding:    "16px",
	},
}

// themeFor resolves a theme selector, falling back to the default theme for
// unknown names.
func themeFor(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}
