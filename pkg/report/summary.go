package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/targetenv/pkg/requirement"
	"github.com/arthur-debert/targetenv/pkg/targets"
	"github.com/arthur-debert/targetenv/pkg/versions"
)

// Item is one selected plugin or built-in.
type Item struct {
	Name    string             `json:"name"`
	Loose   bool               `json:"loose,omitempty"`
	Reason  requirement.Reason `json:"reason,omitempty"`
	Targets map[string]string  `json:"targets,omitempty"`
}

// Summary is the user-facing view of a resolution.
type Summary struct {
	Targets     map[string]string `json:"targets"`
	Uglify      bool              `json:"uglify,omitempty"`
	Modules     string            `json:"modules"`
	UseBuiltIns string            `json:"useBuiltIns"`
	Plugins     []Item            `json:"plugins"`
	BuiltIns    []Item            `json:"builtIns,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// ItemFromDecision converts a decision, prettifying trigger versions.
func ItemFromDecision(d requirement.Decision) Item {
	item := Item{Name: d.Feature, Reason: d.Reason}
	if len(d.Triggers) > 0 {
		item.Targets = TriggerMap(d.Triggers)
	}
	return item
}

// Document renders the summary as targets, plugins and built-ins sections.
func (s *Summary) Document() *Document {
	doc := NewDocument("Resolution", s)
	doc.Add(targetsSection(s.Targets, s.Uglify))

	doc.Add(itemsSection("Plugins", "plugin", s.Plugins, "No plugins required"))
	if s.UseBuiltIns != "" && s.UseBuiltIns != "none" {
		doc.Add(itemsSection(fmt.Sprintf("Built-ins (%s)", s.UseBuiltIns), "builtin", s.BuiltIns,
			"Based on your targets, no polyfills are needed"))
	}
	for _, w := range s.Warnings {
		doc.Note(w)
	}
	return doc
}

// TargetsView is the JSON shape of the targets command.
type TargetsView struct {
	Targets  map[string]string `json:"targets"`
	Uglify   bool              `json:"uglify,omitempty"`
	Warnings []targets.Warning `json:"warnings,omitempty"`
}

// TargetsDocument renders a normalization result.
func TargetsDocument(res *targets.Result) *Document {
	view := TargetsView{
		Targets:  res.Targets.Prettify(),
		Uglify:   res.Targets.Uglify,
		Warnings: res.Warnings,
	}
	doc := NewDocument("Targets", view)
	doc.Add(targetsSection(view.Targets, view.Uglify))
	for _, w := range res.Warnings {
		doc.Note(w.Message)
	}
	return doc
}

// DecisionDocument renders a single feature decision.
func DecisionDocument(d *requirement.Decision) *Document {
	doc := NewDocument(d.Feature, d)

	verdict := "[success]not required[/success]"
	if d.Required {
		verdict = "[error]required[/error]"
	}
	summary := Section{
		Header: []string{"Feature", "Decision", "Reason"},
		Rows:   [][]string{{"[plugin]" + d.Feature + "[/plugin]", verdict, reasonText(d.Reason)}},
	}
	doc.Add(summary)

	triggers := Section{
		Title:  "Triggering targets",
		Header: []string{"Environment", "Target", "Implemented in"},
		Empty:  "No target needs this feature",
	}
	for _, t := range d.Triggers {
		implemented := "never"
		if t.Implemented != "" {
			implemented = versions.Prettify(t.Implemented)
		}
		triggers.Rows = append(triggers.Rows, []string{
			"[env]" + t.Environment + "[/env]",
			"[version]" + versions.Prettify(t.Target) + "[/version]",
			implemented,
		})
	}
	doc.Add(triggers)
	return doc
}

// ListDocument renders a flat list of identifiers.
func ListDocument(title string, ids []string) *Document {
	section := Section{Title: title, Header: []string{"Identifier"}, Empty: "None"}
	for _, id := range ids {
		section.Rows = append(section.Rows, []string{id})
	}
	return NewDocument(title, ids).Add(section)
}

func targetsSection(versionMap map[string]string, uglify bool) Section {
	s := Section{
		Title:  "Targets",
		Header: []string{"Environment", "Version"},
		Empty:  "No targets, every transform applies",
	}
	envs := make([]string, 0, len(versionMap))
	for env := range versionMap {
		envs = append(envs, env)
	}
	sort.Strings(envs)
	for _, env := range envs {
		s.Rows = append(s.Rows, []string{"[env]" + env + "[/env]", "[version]" + versionMap[env] + "[/version]"})
	}
	if uglify {
		s.Rows = append(s.Rows, []string{"[env]uglify[/env]", "[muted]forces every transform[/muted]"})
	}
	return s
}

func itemsSection(title, tag string, items []Item, empty string) Section {
	s := Section{Title: title, Header: []string{"Name", "Triggered by"}, Empty: empty}
	for _, it := range items {
		name := "[" + tag + "]" + it.Name + "[/" + tag + "]"
		if it.Loose {
			name += " [muted](loose)[/muted]"
		}
		s.Rows = append(s.Rows, []string{name, triggerText(it)})
	}
	return s
}

func triggerText(it Item) string {
	if len(it.Targets) == 0 {
		return reasonText(it.Reason)
	}
	envs := make([]string, 0, len(it.Targets))
	for env := range it.Targets {
		envs = append(envs, env)
	}
	sort.Strings(envs)
	parts := make([]string, 0, len(envs))
	for _, env := range envs {
		parts = append(parts, fmt.Sprintf("[env]%s[/env] [version]%s[/version]", env, it.Targets[env]))
	}
	return strings.Join(parts, ", ")
}

func reasonText(r requirement.Reason) string {
	switch r {
	case requirement.ReasonNoTargets:
		return "[muted]no targets[/muted]"
	case requirement.ReasonUglify:
		return "[muted]uglify[/muted]"
	case requirement.ReasonTargets:
		return "[muted]targets[/muted]"
	case requirement.ReasonIncluded:
		return "[muted]explicit include[/muted]"
	default:
		return "[muted]-[/muted]"
	}
}
