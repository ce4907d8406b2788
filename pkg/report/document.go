package report

// Section is a titled table. Cells may carry style markup such as
// [env]chrome[/env]; plain renderers strip it.
type Section struct {
	Title  string
	Header []string
	Rows   [][]string
	// Empty is printed instead of the table when there are no rows.
	Empty string
}

// Document is a renderable command result. Data is what JSON output encodes.
type Document struct {
	Title    string
	Sections []Section
	Notes    []string
	Data     interface{}
}

// NewDocument starts a document for data.
func NewDocument(title string, data interface{}) *Document {
	return &Document{Title: title, Data: data}
}

// Add appends a section.
func (d *Document) Add(s Section) *Document {
	d.Sections = append(d.Sections, s)
	return d
}

// Note appends a warning line shown after the sections.
func (d *Document) Note(msg string) *Document {
	d.Notes = append(d.Notes, msg)
	return d
}
