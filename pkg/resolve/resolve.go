// Package resolve is the public entry point: it validates options, normalizes
// targets and selects the plugins and built-ins the targets need.
package resolve

import (
	"sort"

	"github.com/arthur-debert/targetenv/pkg/catalog"
	"github.com/arthur-debert/targetenv/pkg/logging"
	"github.com/arthur-debert/targetenv/pkg/options"
	"github.com/arthur-debert/targetenv/pkg/report"
	"github.com/arthur-debert/targetenv/pkg/requirement"
	"github.com/arthur-debert/targetenv/pkg/targets"
)

var log = logging.GetLogger("resolve")

// Plugin is a selected transform.
type Plugin struct {
	Name  string `json:"name"`
	Loose bool   `json:"loose,omitempty"`
}

// Result is a complete resolution.
type Result struct {
	Targets  targets.Targets   `json:"targets"`
	Options  options.Options   `json:"options"`
	Plugins  []Plugin          `json:"plugins"`
	BuiltIns []string          `json:"builtIns,omitempty"`
	Warnings []targets.Warning `json:"warnings,omitempty"`

	decisions map[string]requirement.Decision
}

// Resolver holds the collaborators of a resolution. Sink and Session are only
// used when Options.Debug is set.
type Resolver struct {
	Catalog    *catalog.Catalog
	Normalizer *targets.Normalizer
	Sink       report.Sink
	Session    *report.Session
}

// New returns a Resolver that reports debug events to the log.
func New(cat *catalog.Catalog, normalizer *targets.Normalizer) *Resolver {
	return &Resolver{
		Catalog:    cat,
		Normalizer: normalizer,
		Sink:       report.LogSink{Logger: log},
		Session:    &report.Session{},
	}
}

// Resolve runs a resolution. Every option error is returned before targets
// are normalized, and no partial result is ever returned.
func (r *Resolver) Resolve(in options.Options) (*Result, error) {
	done := logging.LogOperationStart(log, "resolve")
	defer done()

	opts, err := options.Normalize(in, r.Catalog)
	if err != nil {
		return nil, err
	}

	normalized, err := r.Normalizer.Normalize(opts.Targets)
	if err != nil {
		return nil, err
	}
	t := normalized.Targets
	if opts.ForceAllTransforms {
		t.Uglify = true
	}

	includedPlugins, includedBuiltIns := r.Catalog.Classify(opts.Include)
	excluded := toSet(opts.Exclude)

	res := &Result{
		Targets:   t,
		Options:   opts,
		Plugins:   []Plugin{},
		Warnings:  normalized.Warnings,
		decisions: make(map[string]requirement.Decision),
	}

	var pluginDecisions []requirement.Decision
	if opts.SyntaxEnabled() {
		pluginDecisions, err = requirement.Decide(t, r.Catalog.Plugins, r.candidates(r.Catalog.PluginNames(), opts))
		if err != nil {
			return nil, err
		}
	}
	pluginNames := r.selectFeatures(res, pluginDecisions, includedPlugins, excluded)
	if opts.Modules != options.ModulesNone {
		if module, ok := r.Catalog.ModuleTransforms[string(opts.Modules)]; ok && !excluded[module] {
			pluginNames = appendUnique(pluginNames, module)
		}
	}
	for _, name := range pluginNames {
		res.Plugins = append(res.Plugins, Plugin{Name: name, Loose: opts.Loose})
	}

	if opts.UseBuiltIns != options.BuiltInsNone {
		builtInDecisions, err := requirement.Decide(t, r.Catalog.BuiltIns, r.candidates(r.Catalog.BuiltInNames(), opts))
		if err != nil {
			return nil, err
		}
		builtIns := r.selectFeatures(res, builtInDecisions, includedBuiltIns, excluded)
		if !t.OnlyNode() {
			for _, id := range r.Catalog.DefaultWebIncludes {
				if !excluded[id] {
					builtIns = appendUnique(builtIns, id)
				}
			}
		}
		res.BuiltIns = builtIns
		if res.BuiltIns == nil {
			res.BuiltIns = []string{}
		}
	}

	if opts.Debug {
		r.report(res)
	}

	log.Info().
		Int("plugins", len(res.Plugins)).
		Int("builtIns", len(res.BuiltIns)).
		Msg("Resolution complete")

	return res, nil
}

// candidates drops shipped proposals unless they were asked for.
func (r *Resolver) candidates(names []string, opts options.Options) []string {
	if opts.ShippedProposals {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !r.Catalog.ShippedProposals[n] {
			out = append(out, n)
		}
	}
	return out
}

// selectFeatures applies include and exclude on top of the required decisions and
// records the decisions for reporting.
func (r *Resolver) selectFeatures(res *Result, required []requirement.Decision, include []string, excluded map[string]bool) []string {
	var names []string
	for _, d := range required {
		res.decisions[d.Feature] = d
		if !excluded[d.Feature] {
			names = append(names, d.Feature)
		}
	}
	for _, id := range include {
		if _, ok := res.decisions[id]; !ok {
			res.decisions[id] = requirement.Decision{Feature: id, Required: true, Reason: requirement.ReasonIncluded}
		}
		names = appendUnique(names, id)
	}
	sort.Strings(names)
	return names
}

func (r *Resolver) report(res *Result) {
	if r.Sink == nil {
		return
	}
	sink := r.Sink
	if r.Session != nil {
		sink = report.Dedup(r.Session, sink)
	}
	for _, p := range res.Plugins {
		if d, ok := res.decisions[p.Name]; ok {
			sink.Emit(report.Event{Kind: report.KindPlugin, Decision: d})
		}
	}
	for _, id := range res.BuiltIns {
		if d, ok := res.decisions[id]; ok {
			sink.Emit(report.Event{Kind: report.KindBuiltIn, Decision: d})
		}
	}
}

// Decision returns the recorded decision for a selected plugin or built-in.
func (res *Result) Decision(id string) (requirement.Decision, bool) {
	d, ok := res.decisions[id]
	return d, ok
}

// PluginNames returns the selected plugin names in order.
func (res *Result) PluginNames() []string {
	names := make([]string, len(res.Plugins))
	for i, p := range res.Plugins {
		names[i] = p.Name
	}
	return names
}

// Summary builds the user-facing view of the result.
func (res *Result) Summary() *report.Summary {
	s := &report.Summary{
		Targets:     res.Targets.Prettify(),
		Uglify:      res.Targets.Uglify,
		Modules:     string(res.Options.Modules),
		UseBuiltIns: string(res.Options.UseBuiltIns),
		Plugins:     []report.Item{},
	}
	for _, p := range res.Plugins {
		// module transforms are chosen by option and carry no decision
		item := report.Item{Name: p.Name}
		if d, ok := res.decisions[p.Name]; ok {
			item = report.ItemFromDecision(d)
		}
		item.Loose = p.Loose
		s.Plugins = append(s.Plugins, item)
	}
	for _, id := range res.BuiltIns {
		item := report.Item{Name: id}
		if d, ok := res.decisions[id]; ok {
			item = report.ItemFromDecision(d)
		}
		s.BuiltIns = append(s.BuiltIns, item)
	}
	for _, w := range res.Warnings {
		s.Warnings = append(s.Warnings, w.Message)
	}
	return s
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func appendUnique(list []string, id string) []string {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}
