package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders inline tags such as [env]chrome[/env].
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
	plain    bool
}

// NewMarkupParser returns a parser for the default theme.
func NewMarkupParser() *MarkupParser {
	return NewThemedParser(DefaultTheme)
}

// NewThemedParser returns a parser with every tag of theme.
func NewThemedParser(theme Theme) *MarkupParser {
	p := &MarkupParser{
		styles:   make(map[string]lipgloss.Style),
		patterns: make(map[string]*regexp.Regexp),
	}
	for tag, s := range theme.Tags() {
		p.AddStyle(tag, s)
	}
	return p
}

// NewPlainParser returns a parser that strips tags without styling.
func NewPlainParser() *MarkupParser {
	p := NewMarkupParser()
	p.plain = true
	return p
}

// AddStyle registers or replaces a tag.
func (p *MarkupParser) AddStyle(tag string, s lipgloss.Style) {
	p.styles[tag] = s
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render replaces every known tag pair, innermost first.
func (p *MarkupParser) Render(text string) string {
	tags := make([]string, 0, len(p.patterns))
	for tag := range p.patterns {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	result := text
	for changed := true; changed; {
		changed = false
		for _, tag := range tags {
			pattern := p.patterns[tag]
			s := p.styles[tag]
			next := pattern.ReplaceAllStringFunc(result, func(match string) string {
				inner := pattern.FindStringSubmatch(match)[1]
				if p.plain {
					return inner
				}
				return s.Render(inner)
			})
			if next != result {
				result = next
				changed = true
			}
		}
	}
	return result
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser.
func Render(text string) string {
	return defaultParser.Render(text)
}
