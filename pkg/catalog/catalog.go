package catalog

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/logging"
	"github.com/arthur-debert/targetenv/pkg/versions"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed data/*.toml
var dataFS embed.FS

var log = logging.GetLogger("catalog")

// SupportTable maps an environment name to the lowest version implementing a
// feature natively, in canonical three-part form.
type SupportTable map[string]string

// Catalog is the immutable feature data for one process.
type Catalog struct {
	Plugins            map[string]SupportTable
	BuiltIns           map[string]SupportTable
	ModuleTransforms   map[string]string
	DefaultWebIncludes []string
	ShippedProposals   map[string]bool
	UnreleasedLabels   map[string]string
	ElectronToChromium map[string]string
}

type metaFile struct {
	DefaultWebIncludes []string          `toml:"default_web_includes"`
	Modules            map[string]string `toml:"modules"`
	Proposals          struct {
		Plugins  []string `toml:"plugins"`
		BuiltIns []string `toml:"built_ins"`
	} `toml:"proposals"`
	Unreleased map[string]string `toml:"unreleased"`
	Electron   map[string]string `toml:"electron"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, decoding it on first use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = loadEmbedded()
	})
	return defaultCatalog, defaultErr
}

func loadEmbedded() (*Catalog, error) {
	plugins, err := readTables("data/plugins.toml")
	if err != nil {
		return nil, err
	}
	builtIns, err := readTables("data/built-ins.toml")
	if err != nil {
		return nil, err
	}

	raw, err := dataFS.ReadFile("data/catalog.toml")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogInvalid, "failed to read catalog metadata")
	}
	var meta metaFile
	if err := toml.Unmarshal(raw, &meta); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogInvalid, "failed to parse catalog metadata")
	}

	proposals := make(map[string]bool)
	for _, id := range append(meta.Proposals.Plugins, meta.Proposals.BuiltIns...) {
		proposals[id] = true
	}

	c := &Catalog{
		Plugins:            plugins,
		BuiltIns:           builtIns,
		ModuleTransforms:   meta.Modules,
		DefaultWebIncludes: meta.DefaultWebIncludes,
		ShippedProposals:   proposals,
		UnreleasedLabels:   meta.Unreleased,
		ElectronToChromium: meta.Electron,
	}

	log.Debug().
		Int("plugins", len(c.Plugins)).
		Int("builtIns", len(c.BuiltIns)).
		Msg("Embedded catalog loaded")

	return c, nil
}

func readTables(name string) (map[string]SupportTable, error) {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogInvalid, "failed to read %s", name)
	}
	var tables map[string]map[string]interface{}
	if err := toml.Unmarshal(raw, &tables); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogInvalid, "failed to parse %s", name)
	}
	return canonicalTables(tables, name)
}

// canonicalTables semverifies every entry so comparisons never see raw input.
func canonicalTables(tables map[string]map[string]interface{}, source string) (map[string]SupportTable, error) {
	out := make(map[string]SupportTable, len(tables))
	for id, envs := range tables {
		table := make(SupportTable, len(envs))
		for env, raw := range envs {
			if b, ok := raw.(bool); ok && !b {
				// false marks "never implemented", same as a missing key
				continue
			}
			v, err := versions.Semverify(raw)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrCatalogInvalid,
					"invalid version for %s/%s in %s", id, env, source)
			}
			table[env] = v
		}
		out[id] = table
	}
	return out, nil
}

// IsPlugin reports whether id names a syntax plugin or a module transform.
func (c *Catalog) IsPlugin(id string) bool {
	if _, ok := c.Plugins[id]; ok {
		return true
	}
	for _, name := range c.ModuleTransforms {
		if name == id {
			return true
		}
	}
	return false
}

// IsBuiltIn reports whether id names a polyfillable built-in.
func (c *Catalog) IsBuiltIn(id string) bool {
	if _, ok := c.BuiltIns[id]; ok {
		return true
	}
	for _, name := range c.DefaultWebIncludes {
		if name == id {
			return true
		}
	}
	return false
}

// IsValidIdentifier reports whether id may appear in include/exclude lists.
func (c *Catalog) IsValidIdentifier(id string) bool {
	return c.IsPlugin(id) || c.IsBuiltIn(id)
}

// Classify splits identifiers into plugins and built-ins, keeping input order.
// Unknown identifiers are dropped.
func (c *Catalog) Classify(ids []string) (plugins, builtIns []string) {
	plugins = []string{}
	builtIns = []string{}
	for _, id := range ids {
		switch {
		case c.IsPlugin(id):
			plugins = append(plugins, id)
		case c.IsBuiltIn(id):
			builtIns = append(builtIns, id)
		}
	}
	return plugins, builtIns
}

// PluginNames returns the syntax plugin identifiers in sorted order.
func (c *Catalog) PluginNames() []string {
	return sortedKeys(c.Plugins)
}

// BuiltInNames returns the built-in identifiers in sorted order.
func (c *Catalog) BuiltInNames() []string {
	return sortedKeys(c.BuiltIns)
}

// ModuleTypes returns the supported module types in sorted order.
func (c *Catalog) ModuleTypes() []string {
	types := make([]string, 0, len(c.ModuleTransforms))
	for t := range c.ModuleTransforms {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Table returns the support table for a plugin or built-in.
func (c *Catalog) Table(id string) (SupportTable, bool) {
	if t, ok := c.Plugins[id]; ok {
		return t, true
	}
	t, ok := c.BuiltIns[id]
	return t, ok
}

// EnvironmentVersions collects, per environment, every distinct version that
// appears in the plugin tables (and built-in tables when withBuiltIns is set),
// sorted ascending.
func (c *Catalog) EnvironmentVersions(env string, withBuiltIns bool) []string {
	seen := make(map[string]bool)
	collect := func(tables map[string]SupportTable) {
		for _, t := range tables {
			if v, ok := t[env]; ok {
				seen[v] = true
			}
		}
	}
	collect(c.Plugins)
	if withBuiltIns {
		collect(c.BuiltIns)
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return versions.Less(out[i], out[j]) })
	return out
}

// ChromiumForElectron returns the canonical Chromium version bundled with an
// Electron release line ("1.4").
func (c *Catalog) ChromiumForElectron(line string) (string, error) {
	chrome, ok := c.ElectronToChromium[line]
	if !ok {
		return "", fmt.Errorf("electron %s is not in the electron-to-chromium table", line)
	}
	return versions.Semverify(chrome)
}

func sortedKeys(m map[string]SupportTable) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
