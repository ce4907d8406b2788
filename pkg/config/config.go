package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/logging"
	"github.com/arthur-debert/targetenv/pkg/options"
	"github.com/arthur-debert/targetenv/pkg/targets"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var log = logging.GetLogger("config")

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: TARGETENV_NODE__CURRENT sets node.current.
const EnvPrefix = "TARGETENV_"

// ProjectFiles are searched in order in the project directory.
var ProjectFiles = []string{"targetenv.toml", ".targetenv.toml", "targetenv.yaml", "targetenv.yml"}

// Config is the fully merged configuration.
type Config struct {
	options.Options `koanf:",squash"`

	Node     NodeConfig     `koanf:"node"`
	Electron ElectronConfig `koanf:"electron"`
	Browsers BrowsersConfig `koanf:"browsers"`
	Catalog  CatalogConfig  `koanf:"catalog"`

	// Source is the project file that was loaded, if any.
	Source string `koanf:"-"`
}

// NodeConfig controls how node sentinels resolve.
type NodeConfig struct {
	Current    string                    `koanf:"current"`
	Binary     string                    `koanf:"binary"`
	Maintained []targets.MaintainedEntry `koanf:"maintained"`
}

// ElectronConfig pins the Electron version used for electron = "current".
// Empty means read it from node_modules.
type ElectronConfig struct {
	Current string `koanf:"current"`
}

// BrowsersConfig tunes the browser query resolver.
type BrowsersConfig struct {
	CacheSize int `koanf:"cache_size"`
}

// CatalogConfig points at user catalog overrides.
type CatalogConfig struct {
	Overrides string `koanf:"overrides"`
}

// Load merges defaults, the project file found in dir (or explicit when
// set) and the environment.
func Load(dir, explicit string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. Project file
	source, err := projectFile(dir, explicit)
	if err != nil {
		return nil, err
	}
	if source != "" {
		parser, err := parserFor(source)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(source), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", source).
				WithDetail("path", source)
		}
		log.Debug().Str("path", source).Msg("Loaded project config")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Source = source
	if source != "" && cfg.Catalog.Overrides != "" && !filepath.IsAbs(cfg.Catalog.Overrides) {
		cfg.Catalog.Overrides = filepath.Join(filepath.Dir(source), cfg.Catalog.Overrides)
	}
	return cfg, nil
}

// FromMap builds a configuration from defaults plus values, as if values had
// been read from a project file.
func FromMap(values map[string]interface{}) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load values")
	}
	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				boolToModuleTypeHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if cfg.Targets == nil {
		cfg.Targets = targets.Spec{}
	}
	return &cfg, nil
}

// boolToModuleTypeHookFunc lets `modules = false` decode into ModuleType.
func boolToModuleTypeHookFunc() mapstructure.DecodeHookFunc {
	moduleType := reflect.TypeOf(options.ModuleType(""))
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t == moduleType && f.Kind() == reflect.Bool {
			return strconv.FormatBool(data.(bool)), nil
		}
		return data, nil
	}
}

func projectFile(dir, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// Merge applies non-zero fields of overrides on top of the loaded options.
// Target entries are merged key by key. A set UseSyntax wins even when false.
func (c *Config) Merge(overrides options.Options) error {
	useSyntax := overrides.UseSyntax
	overrides.UseSyntax = nil
	if err := mergo.Merge(&c.Options, overrides, mergo.WithOverride); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to merge option overrides")
	}
	if useSyntax != nil {
		v := *useSyntax
		c.UseSyntax = &v
	}
	return nil
}

// Configure applies the node and electron settings to a normalizer.
func (c *Config) Configure(n *targets.Normalizer) error {
	if c.Electron.Current != "" {
		n.Electron = targets.StaticElectron(c.Electron.Current)
	}
	switch {
	case c.Node.Current != "":
		n.Runtime = targets.StaticRuntime(c.Node.Current)
	case c.Node.Binary != "":
		n.Runtime = targets.ExecRuntime{Binary: c.Node.Binary}
	}
	if len(c.Node.Maintained) > 0 {
		table, err := targets.ParseMaintained(c.Node.Maintained)
		if err != nil {
			return errors.Wrap(err, errors.ErrConfigParse, "invalid node.maintained table")
		}
		n.Maintained = table
	}
	return nil
}
