// Package styles provides the theme palettes and shared lipgloss styles for
// the shelf CLI and TUI.
package styles

import (
	"sort"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette. Colors are hex strings so
// they can feed both lipgloss and glamour.
type Palette struct {
	Primary    string
	Secondary  string
	Foreground string
	Muted      string
	Background string
	Surface    string
	Success    string
	Warning    string
	Error      string
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    "#7aa2f7",
		Secondary:  "#7dcfff",
		Foreground: "#c0caf5",
		Muted:      "#565f89",
		Background: "#1a1b26",
		Surface:    "#3b4261",
		Success:    "#9ece6a",
		Warning:    "#e0af68",
		Error:      "#f7768e",
	},
	"gruvbox": {
		Primary:    "#83a598",
		Secondary:  "#8ec07c",
		Foreground: "#ebdbb2",
		Muted:      "#665c54",
		Background: "#282828",
		Surface:    "#3c3836",
		Success:    "#b8bb26",
		Warning:    "#fabd2f",
		Error:      "#fb4934",
	},
	"catppuccin": {
		Primary:    "#89b4fa",
		Secondary:  "#94e2d5",
		Foreground: "#cdd6f4",
		Muted:      "#6c7086",
		Background: "#1e1e2e",
		Surface:    "#313244",
		Success:    "#a6e3a1",
		Warning:    "#f9e2af",
		Error:      "#f38ba8",
	},
}

// Names returns sorted names of all built-in themes.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette = themes[DefaultTheme]

// Shared TUI styles, rebuilt by SetTheme.
var (
	TitleStyle      lipgloss.Style
	BreadcrumbStyle lipgloss.Style
	SelectedStyle   lipgloss.Style
	FolderStyle     lipgloss.Style
	DocumentStyle   lipgloss.Style
	MutedStyle      lipgloss.Style
	StatusBarStyle  lipgloss.Style
	ErrorStyle      lipgloss.Style
	ViewerTitle     lipgloss.Style
	SearchBarStyle  lipgloss.Style
)

func init() {
	SetTheme(CurrentPalette)
}

// SetTheme activates the palette and rebuilds all shared styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Primary))

	BreadcrumbStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Secondary))

	SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Foreground)).
		Background(lipgloss.Color(selectionColor(p)))

	FolderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Secondary))

	DocumentStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Foreground))

	MutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Muted))

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Foreground)).
		Background(lipgloss.Color(p.Surface))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Error))

	ViewerTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Background)).
		Background(lipgloss.Color(p.Primary)).
		Padding(0, 1)

	SearchBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Warning))
}

// selectionColor derives a selection background a shade above the surface.
func selectionColor(p Palette) string {
	c, err := colorful.Hex(p.Surface)
	if err != nil {
		return p.Surface
	}
	return c.BlendLab(mustHex(p.Primary, c), 0.25).Hex()
}

func mustHex(hex string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

func hexPtr(hex string) *string {
	if hex == "" {
		return nil
	}
	return &hex
}

// GlamourStyle returns a glamour style config derived from the active theme,
// used when rendering notebook pages in the viewer pane.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	fg := hexPtr(p.Foreground)
	primary := hexPtr(p.Primary)
	secondary := hexPtr(p.Secondary)
	muted := hexPtr(p.Muted)
	surface := hexPtr(p.Surface)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = surface
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
