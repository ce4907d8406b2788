package cli

import (
	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/options"
	"github.com/arthur-debert/targetenv/pkg/report"
	"github.com/arthur-debert/targetenv/pkg/requirement"
	"github.com/spf13/cobra"
)

func newCheckCmd(g *globals) *cobra.Command {
	f := &targetFlags{}
	cmd := &cobra.Command{
		Use:     "check <feature>",
		Short:   MsgCheckShort,
		Example: MsgCheckExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(cmd, g, f)
			if err != nil {
				return err
			}

			feature := options.StripPrefixes(args)[0]
			table, ok := p.catalog.Table(feature)
			if !ok {
				return errors.Newf(errors.ErrUnknownIdentifier, MsgErrUnknownCheck, feature).
					WithDetail("identifiers", []string{feature})
			}

			res, err := p.normalizer.Normalize(p.cfg.Targets)
			if err != nil {
				return err
			}
			decision, err := requirement.Explain(feature, res.Targets, table)
			if err != nil {
				return err
			}
			return p.renderer.RenderResult(report.DecisionDocument(decision))
		},
	}
	f.register(cmd, false)
	return cmd
}
