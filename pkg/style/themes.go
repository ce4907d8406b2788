// Package style holds the lipgloss theme for terminal output and the inline
// markup used in report cells.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme assigns a color to every role used in reports. Colors adapt to light
// and dark terminals.
type Theme struct {
	Heading     lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Accent      lipgloss.AdaptiveColor
	Success     lipgloss.AdaptiveColor
	Error       lipgloss.AdaptiveColor
	Warning     lipgloss.AdaptiveColor
	Environment lipgloss.AdaptiveColor
	Plugin      lipgloss.AdaptiveColor
	BuiltIn     lipgloss.AdaptiveColor
	Version     lipgloss.AdaptiveColor
}

// DefaultTheme is used by the package-level styles.
var DefaultTheme = Theme{
	Heading:     lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F3F4F6"},
	Text:        lipgloss.AdaptiveColor{Light: "#374151", Dark: "#E5E7EB"},
	Muted:       lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
	Accent:      lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"},
	Success:     lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"},
	Error:       lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},
	Warning:     lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"},
	Environment: lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"},
	Plugin:      lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"},
	BuiltIn:     lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"},
	Version:     lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"},
}
