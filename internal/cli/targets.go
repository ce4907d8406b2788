package cli

import (
	"github.com/arthur-debert/targetenv/pkg/report"
	"github.com/spf13/cobra"
)

func newTargetsCmd(g *globals) *cobra.Command {
	f := &targetFlags{}
	cmd := &cobra.Command{
		Use:     "targets",
		Short:   MsgTargetsShort,
		Long:    MsgTargetsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(cmd, g, f)
			if err != nil {
				return err
			}
			res, err := p.normalizer.Normalize(p.cfg.Targets)
			if err != nil {
				return err
			}
			return p.renderer.RenderResult(report.TargetsDocument(res))
		},
	}
	f.register(cmd, false)
	return cmd
}
