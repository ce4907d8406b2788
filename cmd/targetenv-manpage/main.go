package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/targetenv/internal/cli"
	"github.com/arthur-debert/targetenv/internal/version"
)

// Writes one man page per command into the directory given as the only
// argument, or the root page to stdout when no directory is given.
func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "TARGETENV",
		Section: "1",
		Source:  "targetenv " + version.Version,
		Manual:  "targetenv manual",
	}

	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
