// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/targetenv/pkg/report"
	"github.com/arthur-debert/targetenv/pkg/style"
	"github.com/pterm/pterm"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	markup *style.MarkupParser
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{
		output: output,
		markup: style.NewPlainParser(),
	}, nil
}

// RenderResult renders any result type as plain text
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
			out.WriteString(s.Title + ":\n")
		}
		if len(s.Rows) == 0 {
			out.WriteString("  " + s.Empty + "\n")
			continue
		}
		table, err := r.table(s)
		if err != nil {
			return err
		}
		out.WriteString(table + "\n")
	}
	for _, n := range doc.Notes {
		out.WriteString("\nWarning: " + r.markup.Render(n) + "\n")
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

	plain := pterm.NewStyle()
	return pterm.DefaultTable.
		WithHasHeader(len(s.Header) > 0).
		WithStyle(plain).
		WithHeaderStyle(plain).
		WithSeparatorStyle(plain).
		WithData(data).
		Srender()
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.markup.Render(msg))
	return err
}
