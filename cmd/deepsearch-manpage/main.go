// Generates the deepsearch(1) man page for packaging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/X-Seti/Deepsearch/cmd/deepsearch"
	"github.com/X-Seti/Deepsearch/internal/version"
)

func main() {
	rootCmd := deepsearch.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DEEPSEARCH",
		Section: "1",
		Source:  "deepsearch " + version.Version,
		Manual:  "deepsearch manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
