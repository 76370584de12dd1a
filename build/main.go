package main

import (
	"flag"

	"github.com/goyek/goyek/v2"
)

// Flags for test task
var (
	testRun     = flag.String("run", "", "Only run tests matching this pattern (for test)")
	testVerbose = flag.Bool("test-verbose", false, "Verbose test output")
)

// Flags for check-manifest task
var manifestFiles = flag.String("manifests", "", "Comma-separated manifest files to check (for check-manifest)")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		args = []string{"list"}
	}
	goyek.Main(args)
}
