package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles used to draw the table. Every style is bound to
// one renderer so output written to a file or a test buffer can be plain.
type Theme struct {
	renderer *lipgloss.Renderer

	Header    lipgloss.Style
	Log       lipgloss.Style
	HandInfo  lipgloss.Style
	Actions   lipgloss.Style
	Selected  lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Player    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// NewRenderer returns a lipgloss renderer writing to w. Plain renderers
// emit no colour codes at all.
func NewRenderer(w io.Writer, plain bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewTheme builds the default theme on r
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		renderer: r,

		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),

		Log: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),

		HandInfo: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Actions: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),

		Selected: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),

		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		BlackCard: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),

		Player: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),

		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),

		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Renderer returns the renderer the theme's styles are bound to
func (t Theme) Renderer() *lipgloss.Renderer { return t.renderer }
