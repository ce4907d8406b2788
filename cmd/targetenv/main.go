package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/targetenv/internal/cli"
	"github.com/arthur-debert/targetenv/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		format := ui.FormatAuto
		if flag := rootCmd.PersistentFlags().Lookup("format"); flag != nil {
			if parsed, perr := ui.ParseFormat(flag.Value.String()); perr == nil {
				format = parsed
			}
		}
		renderer, rerr := ui.NewRenderer(format, os.Stderr)
		if rerr != nil || renderer.RenderError(err) != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
