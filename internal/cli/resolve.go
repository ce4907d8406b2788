package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/targetenv/pkg/report"
	"github.com/arthur-debert/targetenv/pkg/resolve"
	"github.com/arthur-debert/targetenv/pkg/versions"
	"github.com/spf13/cobra"
)

func newResolveCmd(g *globals) *cobra.Command {
	f := &targetFlags{}
	cmd := &cobra.Command{
		Use:     "resolve",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		Example: MsgResolveExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(cmd, g, f)
			if err != nil {
				return err
			}

			resolver := resolve.New(p.catalog, p.normalizer)
			debug := &report.Collector{}
			resolver.Sink = debug

			res, err := resolver.Resolve(p.cfg.Options)
			if err != nil {
				return err
			}
			if res.Options.Debug {
				printDebug(cmd.ErrOrStderr(), res, debug.Events)
			}

			doc := res.Summary().Document()
			doc.Data = res
			return p.renderer.RenderResult(doc)
		},
	}
	f.register(cmd, true)
	return cmd
}

// printDebug writes the trigger report in the order the resolution produced
// it: targets, module transform, plugins, then built-ins.
func printDebug(w io.Writer, res *resolve.Result, events []report.Event) {
	_, _ = fmt.Fprintf(w, MsgDebugHeader, formatTriggers(res.Targets.Prettify()))
	_, _ = fmt.Fprintf(w, MsgDebugModules, res.Options.Modules)

	_, _ = fmt.Fprint(w, MsgDebugPlugins)
	for _, e := range events {
		if e.Kind == report.KindPlugin {
			_, _ = fmt.Fprintf(w, MsgDebugItem, e.Decision.Feature, formatTriggers(report.TriggerMap(e.Decision.Triggers)))
		}
	}

	if res.BuiltIns == nil {
		return
	}
	_, _ = fmt.Fprintf(w, MsgDebugBuiltIns, res.Options.UseBuiltIns)
	if len(res.BuiltIns) == 0 {
		_, _ = fmt.Fprint(w, MsgDebugNoBuiltIns)
		return
	}
	for _, e := range events {
		if e.Kind == report.KindBuiltIn {
			_, _ = fmt.Fprintf(w, MsgDebugItem, e.Decision.Feature, formatTriggers(report.TriggerMap(e.Decision.Triggers)))
		}
	}
}

// formatTriggers renders {"chrome": "54.0.0"} as `{ "chrome":"54" }`.
func formatTriggers(m map[string]string) string {
	if len(m) == 0 {
		return "{}"
	}
	envs := make([]string, 0, len(m))
	for env := range m {
		envs = append(envs, env)
	}
	sort.Strings(envs)

	parts := make([]string, len(envs))
	for i, env := range envs {
		parts[i] = fmt.Sprintf("%q:%q", env, versions.Prettify(m[env]))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
