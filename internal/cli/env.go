package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/targetenv/pkg/browsers"
	"github.com/arthur-debert/targetenv/pkg/catalog"
	"github.com/arthur-debert/targetenv/pkg/config"
	"github.com/arthur-debert/targetenv/pkg/engines"
	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/logging"
	"github.com/arthur-debert/targetenv/pkg/options"
	"github.com/arthur-debert/targetenv/pkg/targets"
	"github.com/arthur-debert/targetenv/pkg/ui"
	"github.com/spf13/cobra"
)

// targetFlags are the resolution flags shared by resolve, targets and check.
type targetFlags struct {
	targets          []string
	browsers         []string
	include          []string
	exclude          []string
	modules          string
	loose            bool
	useBuiltIns      string
	shippedProposals bool
	forceAll         bool
	useSyntax        bool
	engines          bool
}

func (f *targetFlags) register(cmd *cobra.Command, withSelection bool) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.targets, "target", "t", nil, MsgFlagTarget)
	flags.StringArrayVar(&f.browsers, "browsers", nil, MsgFlagBrowsers)
	flags.BoolVar(&f.engines, "engines", false, MsgFlagEngines)
	flags.StringVar(&f.useBuiltIns, "use-built-ins", "", MsgFlagUseBuiltIns)
	if !withSelection {
		return
	}
	flags.StringSliceVar(&f.include, "include", nil, MsgFlagInclude)
	flags.StringSliceVar(&f.exclude, "exclude", nil, MsgFlagExclude)
	flags.StringVar(&f.modules, "modules", "", MsgFlagModules)
	flags.BoolVar(&f.loose, "loose", false, MsgFlagLoose)
	flags.BoolVar(&f.shippedProposals, "shipped-proposals", false, MsgFlagShippedProposals)
	flags.BoolVar(&f.forceAll, "force-all-transforms", false, MsgFlagForceAll)
	flags.BoolVar(&f.useSyntax, "use-syntax", true, MsgFlagUseSyntax)
}

// overrides turns the flags that were set into options layered over the
// configuration. Unset flags leave the configured values alone.
func (f *targetFlags) overrides(cmd *cobra.Command, debug bool) (options.Options, error) {
	var out options.Options

	spec, err := parseTargetFlags(f.targets)
	if err != nil {
		return out, err
	}
	if len(f.browsers) > 0 {
		spec[targets.BrowsersKey] = f.browsers
	}
	if len(spec) > 0 {
		out.Targets = spec
	}

	changed := cmd.Flags().Changed
	out.Include = f.include
	out.Exclude = f.exclude
	if changed("modules") {
		out.Modules = options.ModuleType(f.modules)
	}
	if changed("use-built-ins") {
		out.UseBuiltIns = options.BuiltInsMode(f.useBuiltIns)
	}
	if changed("use-syntax") {
		useSyntax := f.useSyntax
		out.UseSyntax = &useSyntax
	}
	out.Loose = f.loose
	out.ShippedProposals = f.shippedProposals
	out.ForceAllTransforms = f.forceAll
	out.Debug = debug
	return out, nil
}

// parseTargetFlags reads env=version pairs. Values stay strings; the
// normalizer reads "true" and "false" as booleans where they apply.
func parseTargetFlags(pairs []string) (targets.Spec, error) {
	spec := targets.Spec{}
	for _, pair := range pairs {
		env, value, ok := strings.Cut(pair, "=")
		env = strings.TrimSpace(env)
		value = strings.TrimSpace(value)
		if !ok || env == "" || value == "" {
			return nil, errors.Newf(errors.ErrInvalidSpecification, MsgErrTargetFlag, pair).
				WithDetail("value", pair)
		}
		spec[env] = value
	}
	return spec, nil
}

// pipeline is everything a command needs to resolve targets.
type pipeline struct {
	dir        string
	cfg        *config.Config
	catalog    *catalog.Catalog
	normalizer *targets.Normalizer
	renderer   ui.Renderer
}

// newPipeline loads configuration, applies flag overrides and assembles the
// catalog, browser resolver and normalizer.
func newPipeline(cmd *cobra.Command, g *globals, f *targetFlags) (*pipeline, error) {
	logger := logging.GetLogger("cli")

	renderer, err := newRenderer(cmd, g)
	if err != nil {
		return nil, err
	}

	dir := g.dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf(MsgErrWorkingDir, err)
		}
	}

	cfg, err := config.Load(dir, g.configPath)
	if err != nil {
		return nil, err
	}
	overrides, err := f.overrides(cmd, g.debug)
	if err != nil {
		return nil, err
	}
	if err := cfg.Merge(overrides); err != nil {
		return nil, err
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	if cfg.Catalog.Overrides != "" {
		if cat, err = catalog.LoadOverrides(cat, cfg.Catalog.Overrides); err != nil {
			return nil, err
		}
	}

	db, err := browsers.NewDatabaseResolver()
	if err != nil {
		return nil, err
	}
	query, err := browsers.NewCachingResolver(db, cfg.Browsers.CacheSize)
	if err != nil {
		return nil, err
	}

	normalizer := targets.NewNormalizer(query, cat)
	normalizer.Electron = targets.InstalledElectron{Dir: dir}
	if err := cfg.Configure(normalizer); err != nil {
		return nil, err
	}

	if f.engines {
		if err := applyEngines(cfg, dir, cat); err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Str("dir", dir).
		Str("config", cfg.Source).
		Int("targets", len(cfg.Targets)).
		Msg("Pipeline ready")

	return &pipeline{
		dir:        dir,
		cfg:        cfg,
		catalog:    cat,
		normalizer: normalizer,
		renderer:   renderer,
	}, nil
}

// applyEngines fills in node from package.json when no node target is set.
func applyEngines(cfg *config.Config, dir string, cat *catalog.Catalog) error {
	if _, ok := cfg.Targets[targets.NodeKey]; ok {
		return nil
	}
	withBuiltIns := cfg.UseBuiltIns != "" && cfg.UseBuiltIns != options.BuiltInsNone
	node, err := engines.NodeVersion(dir, engines.Environment(os.Getenv), cat, withBuiltIns)
	if err != nil || node == "" {
		return err
	}
	if cfg.Targets == nil {
		cfg.Targets = targets.Spec{}
	}
	cfg.Targets[targets.NodeKey] = node
	return nil
}

func newRenderer(cmd *cobra.Command, g *globals) (ui.Renderer, error) {
	return ui.NewRenderer(g.format, cmd.OutOrStdout())
}
