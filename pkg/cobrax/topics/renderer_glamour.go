package topics

import (
	"os"

	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics for the terminal.
type GlamourRenderer struct {
	// Style is "auto", "notty" or a glamour style path.
	Style string
	// Width wraps text; 0 keeps glamour's default.
	Width int
}

// NewGlamourRenderer picks "notty" when NO_COLOR is set and "auto" otherwise.
func NewGlamourRenderer() *GlamourRenderer {
	r := &GlamourRenderer{Style: "auto"}
	if os.Getenv("NO_COLOR") != "" {
		r.Style = "notty"
	}
	return r
}

// Render renders markdown; other formats and render failures fall back to
// the raw content.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStandardStyle(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
