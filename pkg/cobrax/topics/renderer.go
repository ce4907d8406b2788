package topics

// Renderer formats topic content; format is the file extension.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

// Render implements Renderer.
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
