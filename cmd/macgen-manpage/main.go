package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/macgen/cmd/macgen"
	"github.com/arthur-debert/macgen/internal/version"
)

// macgen-manpage writes the top-level macgen(1) page to stdout for packaging.
// `macgen man --dir` writes the full tree instead.
func main() {
	rootCmd := macgen.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MACGEN",
		Section: "1",
		Source:  "macgen " + version.Version,
		Manual:  "macgen manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
