// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/targetenv/pkg/report"
	"github.com/arthur-debert/targetenv/pkg/style"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using pterm tables and lipgloss styles
type Renderer struct {
	output io.Writer
	markup *style.MarkupParser
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		markup: style.NewMarkupParser(),
	}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	doc, ok := result.(*report.Document)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}

	var out strings.Builder
	for i, s := range doc.Sections {
		if i > 0 {
			out.WriteString("\n")
		}
		if s.Title != "" {
			out.WriteString(style.TitleStyle.Render(s.Title) + "\n")
		}
		if len(s.Rows) == 0 {
			out.WriteString(style.Indent(style.MutedStyle.Render(s.Empty), 1) + "\n")
			continue
		}
		table, err := r.table(s)
		if err != nil {
			return err
		}
		out.WriteString(table + "\n")
	}
	for _, n := range doc.Notes {
		out.WriteString("\n" + style.WarningIndicator + " " + r.markup.Render(n) + "\n")
	}

	_, err := io.WriteString(r.output, out.String())
	return err
}

func (r *Renderer) table(s report.Section) (string, error) {
	data := pterm.TableData{}
	if len(s.Header) > 0 {
		data = append(data, s.Header)
	}
	for _, row := range s.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = r.markup.Render(c)
		}
		data = append(data, cells)
	}

	return pterm.DefaultTable.
		WithHasHeader(len(s.Header) > 0).
		WithLeftAlignment().
		WithData(data).
		Srender()
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, style.RequiredIndicator+" "+style.ErrorStyle.Render(err.Error()))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.markup.Render(msg))
	return err
}
