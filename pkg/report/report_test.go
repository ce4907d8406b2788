package report

import (
	"testing"

	"github.com/arthur-debert/targetenv/pkg/requirement"
	"github.com/arthur-debert/targetenv/pkg/targets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decision(feature string) requirement.Decision {
	return requirement.Decision{
		Feature:  feature,
		Required: true,
		Reason:   requirement.ReasonTargets,
		Triggers: []requirement.Trigger{{Environment: "chrome", Target: "49.0.0", Implemented: "50.0.0"}},
	}
}

func TestSession(t *testing.T) {
	var s Session
	assert.True(t, s.First("a"))
	assert.False(t, s.First("a"))
	assert.True(t, s.First("b"))

	s.Reset()
	assert.True(t, s.First("a"))
}

func TestDedup(t *testing.T) {
	var session Session
	collector := &Collector{}
	sink := Dedup(&session, collector)

	sink.Emit(Event{Kind: KindPlugin, Decision: decision("transform-es2015-classes")})
	sink.Emit(Event{Kind: KindPlugin, Decision: decision("transform-es2015-classes")})
	sink.Emit(Event{Kind: KindBuiltIn, Decision: decision("transform-es2015-classes")})

	require.Len(t, collector.Events, 2)
	assert.Equal(t, KindBuiltIn, collector.Events[1].Kind)
}

func TestTriggerMap(t *testing.T) {
	got := TriggerMap([]requirement.Trigger{
		{Environment: "chrome", Target: "49.0.0"},
		{Environment: "ios", Target: "10.3.0"},
	})
	assert.Equal(t, map[string]string{"chrome": "49", "ios": "10.3"}, got)
}

func TestSummaryDocument(t *testing.T) {
	s := &Summary{
		Targets:     map[string]string{"chrome": "49", "node": "6.10"},
		Modules:     "commonjs",
		UseBuiltIns: "entry",
		Plugins: []Item{
			{Name: "transform-es2015-classes", Loose: true, Reason: requirement.ReasonTargets, Targets: map[string]string{"chrome": "49"}},
			{Name: "transform-regenerator", Reason: requirement.ReasonIncluded},
		},
		Warnings: []string{"decimal"},
	}

	doc := s.Document()
	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "Targets", doc.Sections[0].Title)
	assert.Equal(t, [][]string{
		{"[env]chrome[/env]", "[version]49[/version]"},
		{"[env]node[/env]", "[version]6.10[/version]"},
	}, doc.Sections[0].Rows)

	plugins := doc.Sections[1]
	assert.Equal(t, "[plugin]transform-es2015-classes[/plugin] [muted](loose)[/muted]", plugins.Rows[0][0])
	assert.Equal(t, "[env]chrome[/env] [version]49[/version]", plugins.Rows[0][1])
	assert.Equal(t, "[muted]explicit include[/muted]", plugins.Rows[1][1])

	assert.Equal(t, "Built-ins (entry)", doc.Sections[2].Title)
	assert.Empty(t, doc.Sections[2].Rows)
	assert.Equal(t, []string{"decimal"}, doc.Notes)
	assert.Same(t, s, doc.Data)
}

func TestSummaryDocument_NoBuiltIns(t *testing.T) {
	doc := (&Summary{UseBuiltIns: "none"}).Document()
	assert.Len(t, doc.Sections, 2)
}

func TestTargetsDocument(t *testing.T) {
	doc := TargetsDocument(&targets.Result{
		Targets:  targets.Targets{Versions: map[string]string{"node": "6.1.0"}, Uglify: true},
		Warnings: []targets.Warning{{Target: "node", Value: 6.1, Message: "decimal node"}},
	})

	view, ok := doc.Data.(TargetsView)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"node": "6.1"}, view.Targets)
	assert.Len(t, doc.Sections[0].Rows, 2)
	assert.Equal(t, []string{"decimal node"}, doc.Notes)
}

func TestDecisionDocument(t *testing.T) {
	d := decision("transform-es2015-classes")
	d.Triggers = append(d.Triggers, requirement.Trigger{Environment: "ie", Target: "11.0.0"})

	doc := DecisionDocument(&d)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "[error]required[/error]", doc.Sections[0].Rows[0][1])
	assert.Equal(t, []string{"[env]ie[/env]", "[version]11[/version]", "never"}, doc.Sections[1].Rows[1])
}

func TestListDocument(t *testing.T) {
	doc := ListDocument("Modules", []string{"amd", "umd"})
	assert.Equal(t, [][]string{{"amd"}, {"umd"}}, doc.Sections[0].Rows)
	assert.Equal(t, []string{"amd", "umd"}, doc.Data)
}
