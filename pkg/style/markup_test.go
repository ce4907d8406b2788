package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainParserStripsTags(t *testing.T) {
	p := NewPlainParser()

	assert.Equal(t, "chrome 49", p.Render("[env]chrome[/env] [version]49[/version]"))
	assert.Equal(t, "nested text", p.Render("[bold][muted]nested[/muted] text[/bold]"))
	assert.Equal(t, "[unknown]kept[/unknown]", p.Render("[unknown]kept[/unknown]"))
}

func TestMarkupParserKeepsContent(t *testing.T) {
	out := NewMarkupParser().Render("[plugin]transform-es2015-classes[/plugin]")
	assert.Contains(t, out, "transform-es2015-classes")
	assert.NotContains(t, out, "[plugin]")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "    x", Indent("x", 2))
}

func TestThemeTags(t *testing.T) {
	tags := DefaultTheme.Tags()
	for _, tag := range []string{"title", "muted", "error", "env", "plugin", "builtin", "version", "bold"} {
		assert.Contains(t, tags, tag)
	}

	custom := DefaultTheme
	custom.Plugin.Dark = "#000000"
	out := NewThemedParser(custom).Render("[plugin]x[/plugin]")
	assert.Contains(t, out, "x")
}
