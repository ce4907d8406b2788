package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/targetenv/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// overrideFile is the on-disk shape of user supplied catalog tables.
type overrideFile struct {
	Plugins  map[string]map[string]interface{} `toml:"plugins" yaml:"plugins"`
	BuiltIns map[string]map[string]interface{} `toml:"built-ins" yaml:"built-ins"`
}

// LoadOverrides reads extra plugin and built-in tables from a TOML or YAML
// file and returns a copy of base with them applied. A table in the file
// replaces the base table of the same identifier wholesale.
func LoadOverrides(base *Catalog, path string) (*Catalog, error) {
	logger := log.With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read catalog overrides %s", path)
	}

	var file overrideFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported catalog override format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse catalog overrides %s", path)
	}

	plugins, err := canonicalTables(file.Plugins, path)
	if err != nil {
		return nil, err
	}
	builtIns, err := canonicalTables(file.BuiltIns, path)
	if err != nil {
		return nil, err
	}

	merged := base.clone()
	for id, t := range plugins {
		merged.Plugins[id] = t
	}
	for id, t := range builtIns {
		merged.BuiltIns[id] = t
	}

	logger.Debug().
		Int("plugins", len(plugins)).
		Int("builtIns", len(builtIns)).
		Msg("Catalog overrides applied")

	return merged, nil
}

func (c *Catalog) clone() *Catalog {
	out := &Catalog{
		Plugins:            make(map[string]SupportTable, len(c.Plugins)),
		BuiltIns:           make(map[string]SupportTable, len(c.BuiltIns)),
		ModuleTransforms:   make(map[string]string, len(c.ModuleTransforms)),
		DefaultWebIncludes: append([]string(nil), c.DefaultWebIncludes...),
		ShippedProposals:   make(map[string]bool, len(c.ShippedProposals)),
		UnreleasedLabels:   make(map[string]string, len(c.UnreleasedLabels)),
		ElectronToChromium: make(map[string]string, len(c.ElectronToChromium)),
	}
	for k, v := range c.Plugins {
		out.Plugins[k] = v
	}
	for k, v := range c.BuiltIns {
		out.BuiltIns[k] = v
	}
	for k, v := range c.ModuleTransforms {
		out.ModuleTransforms[k] = v
	}
	for k, v := range c.ShippedProposals {
		out.ShippedProposals[k] = v
	}
	for k, v := range c.UnreleasedLabels {
		out.UnreleasedLabels[k] = v
	}
	for k, v := range c.ElectronToChromium {
		out.ElectronToChromium[k] = v
	}
	return out
}
