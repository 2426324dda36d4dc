package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dedupe/cmd/dedupe"
	"github.com/arthur-debert/dedupe/internal/version"
)

// Writes the dedupe(1) man page to stdout, or one page per command into the
// directory given as the only argument.
func main() {
	rootCmd := dedupe.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DEDUPE",
		Section: "1",
		Source:  "dedupe " + version.Version,
		Manual:  "dedupe manual",
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
