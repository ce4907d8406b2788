package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Tags maps each markup tag to its style for a theme.
func (t Theme) Tags() map[string]lipgloss.Style {
	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return map[string]lipgloss.Style{
		"title":   fg(t.Heading).Bold(true),
		"text":    fg(t.Text),
		"muted":   fg(t.Muted),
		"code":    fg(t.Accent),
		"success": fg(t.Success).Bold(true),
		"error":   fg(t.Error).Bold(true),
		"warning": fg(t.Warning).Bold(true),
		"env":     fg(t.Environment).Bold(true),
		"plugin":  fg(t.Plugin),
		"builtin": fg(t.BuiltIn),
		"version": fg(t.Version),
		"bold":    lipgloss.NewStyle().Bold(true),
	}
}

var defaultTags = DefaultTheme.Tags()

// Styles of the default theme used outside markup.
var (
	TitleStyle   = defaultTags["title"]
	MutedStyle   = defaultTags["muted"]
	ErrorStyle   = defaultTags["error"]
	WarningStyle = defaultTags["warning"]
)

// Indicators
var (
	RequiredIndicator = ErrorStyle.Render("✗")
	WarningIndicator  = WarningStyle.Render("!")
)

// Indent pads s by two spaces per level.
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
