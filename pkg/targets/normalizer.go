package targets

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/arthur-debert/targetenv/pkg/browsers"
	"github.com/arthur-debert/targetenv/pkg/catalog"
	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/logging"
	"github.com/arthur-debert/targetenv/pkg/versions"
)

var log = logging.GetLogger("targets")

// agentNames maps browser database agents to catalog environments. Agents
// missing here are dropped from query results.
var agentNames = map[string]string{
	"android": "android",
	"chrome":  "chrome",
	"edge":    "edge",
	"firefox": "firefox",
	"ie":      "ie",
	"ios_saf": "ios",
	"node":    "node",
	"opera":   "opera",
	"safari":  "safari",
	"samsung": "samsung",
}

// Normalizer builds canonical target maps. The zero value is not usable; use
// NewNormalizer and override fields as needed.
type Normalizer struct {
	Resolver   browsers.Resolver
	Runtime    RuntimeProvider
	Electron   ElectronProvider
	Clock      func() time.Time
	Maintained MaintainedTable
	Catalog    *catalog.Catalog
}

// NewNormalizer returns a Normalizer using the host node binary, the electron
// package installed under the working directory, the wall clock and the
// built-in maintained table.
func NewNormalizer(resolver browsers.Resolver, cat *catalog.Catalog) *Normalizer {
	return &Normalizer{
		Resolver:   resolver,
		Runtime:    ExecRuntime{},
		Electron:   InstalledElectron{},
		Clock:      time.Now,
		Maintained: DefaultMaintained(),
		Catalog:    cat,
	}
}

// Normalize converts spec into a canonical target map.
func (n *Normalizer) Normalize(spec Spec) (*Result, error) {
	done := logging.LogOperationStart(log, "normalize targets")
	defer done()

	result := &Result{
		Targets:  Targets{Versions: make(map[string]string)},
		Warnings: decimalWarnings(spec),
	}
	for _, w := range result.Warnings {
		log.Warn().
			Str("target", w.Target).
			Interface("value", w.Value).
			Msg(w.Message)
	}

	if raw, ok := spec[BrowsersKey]; ok && raw != nil {
		queryTargets, err := n.fromQuery(raw)
		if err != nil {
			return nil, err
		}
		result.Targets.Versions = queryTargets
	}

	keys := make([]string, 0, len(spec))
	for k := range spec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := spec[key]
		switch key {
		case BrowsersKey, ElectronKey:
			continue
		case UglifyKey:
			if b, ok := boolish(value); ok && b {
				result.Targets.Uglify = true
			}
			continue
		}

		version, keep, err := n.parse(key, value)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}
		// explicit keys win over the query result outright
		result.Targets.Versions[key] = version
	}

	if raw, ok := spec[ElectronKey]; ok && raw != nil {
		chrome, err := n.electron(raw)
		if err != nil {
			return nil, err
		}
		result.Targets.Versions["chrome"] = versions.Min(result.Targets.Versions["chrome"], chrome)
	}

	log.Debug().
		Interface("targets", result.Targets.Versions).
		Bool("uglify", result.Targets.Uglify).
		Msg("Targets normalized")

	return result, nil
}

// fromQuery resolves a browser query and keeps the lowest version per
// environment, since supporting the query means supporting every match.
func (n *Normalizer) fromQuery(raw interface{}) (map[string]string, error) {
	queries, err := queryList(raw)
	if err != nil {
		return nil, err
	}
	if n.Resolver == nil {
		return nil, errors.New(errors.ErrInvalidSpecification, "browser queries need a query resolver")
	}

	matches, err := n.Resolver.Resolve(queries)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidSpecification, "cannot resolve browser query %q", strings.Join(queries, ", ")).
			WithDetail("target", BrowsersKey)
	}

	lowest := make(map[string]string)
	for _, m := range matches {
		env, ok := agentNames[m.Agent]
		if !ok {
			continue
		}
		if n.isUnreleased(env, m.Version) {
			continue
		}
		v, err := versions.Semverify(versions.LowerBound(m.Version))
		if err != nil {
			log.Debug().Str("match", m.String()).Msg("Skipping unparseable query match")
			continue
		}
		lowest[env] = versions.Min(lowest[env], v)
	}
	return lowest, nil
}

func (n *Normalizer) isUnreleased(env, version string) bool {
	if n.Catalog == nil {
		return false
	}
	label, ok := n.Catalog.UnreleasedLabels[env]
	return ok && strings.EqualFold(label, version)
}

func queryList(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalidQuery(raw)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalidQuery(raw)
	}
}

func invalidQuery(raw interface{}) *errors.Error {
	return errors.Newf(errors.ErrInvalidSpecification, "browsers must be a query string or a list of query strings, got %T", raw).
		WithDetail("target", BrowsersKey).
		WithDetail("value", raw)
}

// parse applies the per-environment parser. keep is false for values that
// deliberately do not populate the map.
func (n *Normalizer) parse(key string, value interface{}) (string, bool, error) {
	if key == NodeKey {
		return n.parseNode(value)
	}
	v, err := plainVersion(key, value)
	return v, err == nil, err
}

func (n *Normalizer) parseNode(value interface{}) (string, bool, error) {
	if b, ok := boolish(value); ok {
		if !b {
			return "", false, nil
		}
		return n.currentNode()
	}
	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case SentinelCurrent:
			return n.currentNode()
		case SentinelMaintained:
			version, err := n.Maintained.Lookup(n.now())
			return version, err == nil, err
		}
	}
	v, err := plainVersion(NodeKey, value)
	return v, err == nil, err
}

// boolish reads a boolean target value. Flags and environment variables
// deliver booleans as the strings "true" and "false".
func boolish(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func (n *Normalizer) currentNode() (string, bool, error) {
	if n.Runtime == nil {
		return "", false, errors.New(errors.ErrInvalidTargetVersion, "no runtime provider for the current node version").
			WithDetail("target", NodeKey)
	}
	raw, err := n.Runtime.NodeVersion()
	if err != nil {
		return "", false, err
	}
	v, err := versions.Semverify(raw)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrParse, "host reported node version %q", raw).
			WithDetail("target", NodeKey)
	}
	return v, true, nil
}

func (n *Normalizer) now() time.Time {
	if n.Clock == nil {
		return time.Now()
	}
	return n.Clock()
}

// electron maps an Electron version to the Chromium version it bundles.
// true and "current" use the locally installed Electron.
func (n *Normalizer) electron(raw interface{}) (string, error) {
	if n.Catalog == nil {
		return "", errors.New(errors.ErrInternal, "electron targets need a catalog")
	}
	if b, ok := boolish(raw); ok {
		if !b {
			return "", errors.InvalidTarget(ElectronKey, raw, "false is not an electron version")
		}
		raw = SentinelCurrent
	}
	if s, ok := raw.(string); ok && strings.EqualFold(strings.TrimSpace(s), SentinelCurrent) {
		if n.Electron == nil {
			return "", errors.InvalidTarget(ElectronKey, raw, "the installed electron version cannot be detected")
		}
		installed, err := n.Electron.ElectronVersion()
		if err != nil {
			return "", err
		}
		raw = installed
	}

	v, err := plainVersion(ElectronKey, raw)
	if err != nil {
		return "", err
	}
	parsed, err := versions.Parse(v)
	if err != nil {
		return "", errors.InvalidTarget(ElectronKey, raw, err.Error())
	}
	line := fmt.Sprintf("%d.%d", parsed.Major(), parsed.Minor())
	chrome, err := n.Catalog.ChromiumForElectron(line)
	if err != nil {
		return "", errors.InvalidTarget(ElectronKey, raw, err.Error())
	}
	return chrome, nil
}

// plainVersion is the default parser. Strings that do not start with a digit
// are unknown sentinels rather than malformed numbers.
func plainVersion(key string, value interface{}) (string, error) {
	if s, ok := value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" || !unicode.IsDigit(rune(trimmed[0])) {
			return "", errors.Newf(errors.ErrInvalidSpecification, "unknown version sentinel %q for target %q", s, key).
				WithDetail("target", key).
				WithDetail("value", value)
		}
	}

	v, err := versions.Semverify(value)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrParse, "target %q", key).
			WithDetail("target", key).
			WithDetail("value", value)
	}
	return v, nil
}

// decimalWarnings flags numeric values with a fractional part; 6.10 written as
// a number is read as 6.1.
func decimalWarnings(spec Spec) []Warning {
	var warnings []Warning
	keys := make([]string, 0, len(spec))
	for k := range spec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if versions.IsAmbiguousDecimal(spec[k]) {
			warnings = append(warnings, Warning{
				Target: k,
				Value:  spec[k],
				Message: fmt.Sprintf("target %s is the decimal %v; decimals drop trailing zeros (6.10 reads as 6.1), quote it as a string if that is not intended",
					k, spec[k]),
			})
		}
	}
	return warnings
}
