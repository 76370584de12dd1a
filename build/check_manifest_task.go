package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goyek/goyek/v2"

	"github.com/sokinpui/lintfix/lintfix"
)

// CheckManifest validates the built-in manifest and any manifest files passed
// with -manifests, without touching target files.
var CheckManifest = goyek.Define(goyek.Task{
	Name:  "check-manifest",
	Usage: "Validate the built-in manifest and the files given with -manifests",
	Action: func(a *goyek.A) {
		names, err := lintfix.Validate(lintfix.DefaultManifest(), "default.yaml")
		if err != nil {
			a.Fatalf("Built-in manifest is invalid: %v", err)
		}
		fmt.Printf("default.yaml: %d batches (%s)\n", len(names), strings.Join(names, ", "))

		if *manifestFiles == "" {
			return
		}
		root := moduleRoot(a)
		for _, file := range strings.Split(*manifestFiles, ",") {
			file = strings.TrimSpace(file)
			if file == "" {
				continue
			}
			path := file
			if !filepath.IsAbs(path) {
				path = filepath.Join(root, path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				a.Errorf("Failed to read %s: %v", file, err)
				continue
			}
			names, err := lintfix.Validate(data, path)
			if err != nil {
				a.Errorf("%s: %v", file, err)
				continue
			}
			fmt.Printf("%s: %d batches (%s)\n", file, len(names), strings.Join(names, ", "))
		}
	},
})

// moduleRoot finds the directory holding go.mod.
func moduleRoot(a *goyek.A) string {
	// Get the GOMOD from environment to find the module root
	if gomod := os.Getenv("GOMOD"); gomod != "" {
		return filepath.Dir(gomod)
	}
	wd, err := os.Getwd()
	if err != nil {
		a.Fatalf("Failed to get working directory: %v", err)
	}
	current := wd
	for {
		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return wd
		}
		current = parent
	}
}
