package cli

import (
	"fmt"

	"github.com/arthur-debert/targetenv/pkg/catalog"
	"github.com/arthur-debert/targetenv/pkg/config"
	"github.com/arthur-debert/targetenv/pkg/report"
	"github.com/spf13/cobra"
)

var catalogListings = []string{"plugins", "built-ins", "modules"}

func newCatalogCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:       "catalog [plugins|built-ins|modules]",
		Short:     MsgCatalogShort,
		GroupID:   "core",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: catalogListings,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "plugins"
			if len(args) == 1 {
				kind = args[0]
			}

			renderer, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(g)
			if err != nil {
				return err
			}

			switch kind {
			case "plugins":
				return renderer.RenderResult(report.ListDocument("Plugins", cat.PluginNames()))
			case "built-ins":
				return renderer.RenderResult(report.ListDocument("Built-ins", cat.BuiltInNames()))
			case "modules":
				return renderer.RenderResult(report.ListDocument("Module types", cat.ModuleTypes()))
			default:
				return fmt.Errorf(MsgErrCatalogKind, kind)
			}
		},
	}
}

// loadCatalog returns the embedded catalog with any configured overrides.
func loadCatalog(g *globals) (*catalog.Catalog, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(g.dir, g.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Catalog.Overrides == "" {
		return cat, nil
	}
	return catalog.LoadOverrides(cat, cfg.Catalog.Overrides)
}
