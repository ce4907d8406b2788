package requirement

import (
	"sort"

	"github.com/arthur-debert/targetenv/pkg/catalog"
	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/logging"
	"github.com/arthur-debert/targetenv/pkg/targets"
	"github.com/arthur-debert/targetenv/pkg/versions"
)

var log = logging.GetLogger("requirement")

// Reason explains why a feature was found required.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonNoTargets Reason = "no-targets"
	ReasonUglify    Reason = "uglify"
	ReasonTargets   Reason = "targets"
	// ReasonIncluded marks features forced through an explicit include.
	ReasonIncluded  Reason = "include"
)

// Trigger is one environment whose target version needs the feature.
// Implemented is empty when the environment never implements it.
type Trigger struct {
	Environment string `json:"environment"`
	Target      string `json:"target"`
	Implemented string `json:"implemented,omitempty"`
}

// Decision is the full outcome for one feature.
type Decision struct {
	Feature  string    `json:"feature"`
	Required bool      `json:"required"`
	Reason   Reason    `json:"reason,omitempty"`
	Triggers []Trigger `json:"triggers,omitempty"`
}

// IsRequired reports whether a feature with the given support table must be
// transformed for t.
func IsRequired(t targets.Targets, table catalog.SupportTable) (bool, error) {
	d, err := Explain("", t, table)
	if err != nil {
		return false, err
	}
	return d.Required, nil
}

// Explain decides like IsRequired and records every environment that
// triggered the requirement. Triggers are computed even when the uglify flag
// already forces the result.
func Explain(feature string, t targets.Targets, table catalog.SupportTable) (*Decision, error) {
	d := &Decision{Feature: feature}

	if t.IsEmpty() {
		d.Required = true
		d.Reason = ReasonNoTargets
		return d, nil
	}

	for _, env := range t.Environments() {
		trigger, needed, err := compare(env, t.Versions[env], table)
		if err != nil {
			return nil, err
		}
		if needed {
			d.Triggers = append(d.Triggers, trigger)
		}
	}

	switch {
	case t.Uglify:
		d.Required = true
		d.Reason = ReasonUglify
	case len(d.Triggers) > 0:
		d.Required = true
		d.Reason = ReasonTargets
	}
	return d, nil
}

func compare(env, target string, table catalog.SupportTable) (Trigger, bool, error) {
	trigger := Trigger{Environment: env, Target: target}

	if _, err := versions.Parse(target); err != nil {
		return trigger, false, errors.InvalidTarget(env, target, "not a comparable version")
	}

	implemented, ok := table[env]
	if !ok {
		return trigger, true, nil
	}
	trigger.Implemented = implemented

	c, err := versions.Compare(implemented, target)
	if err != nil {
		return trigger, false, errors.Wrapf(err, errors.ErrCatalogInvalid,
			"support table has an invalid version for %s", env).
			WithDetail("target", env).
			WithDetail("value", implemented)
	}
	// equal versions already ship the feature
	return trigger, c > 0, nil
}

// Decide evaluates every named feature of tables against t and returns the
// required decisions sorted by feature name.
func Decide(t targets.Targets, tables map[string]catalog.SupportTable, features []string) ([]Decision, error) {
	names := append([]string(nil), features...)
	sort.Strings(names)

	var required []Decision
	for _, name := range names {
		d, err := Explain(name, t, tables[name])
		if err != nil {
			return nil, err
		}
		if d.Required {
			required = append(required, *d)
		}
	}

	log.Debug().
		Int("features", len(names)).
		Int("required", len(required)).
		Msg("Requirement decisions computed")

	return required, nil
}
