package lintfix

import (
	"fmt"

	"github.com/sokinpui/lintfix/cli"
	"github.com/sokinpui/lintfix/internal/manifest"
	"github.com/sokinpui/lintfix/model"
)

// Config for using lintfix as a library.
type Config struct {
	// Directories relative target paths resolve against. Empty means the
	// current directory.
	Roots []string
	// Run only these batches. Empty runs all of them.
	Batches []string
}

// DefaultManifest returns the built-in manifest.
func DefaultManifest() []byte {
	return manifest.Default()
}

// Apply runs the batches of a YAML manifest and returns what was changed.
func Apply(manifestData []byte, config Config) (model.Summary, error) {
	cliCfg := &cli.Config{
		Roots:   config.Roots,
		Batches: config.Batches,
	}

	app, err := New(cliCfg)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to initialize lintfix app: %w", err)
	}

	return app.run(manifestData, "library.yaml")
}

// Validate loads a manifest without running it and returns its batch names.
// The name's extension selects the format: .md and .markdown read yaml code
// blocks, anything else is YAML.
func Validate(manifestData []byte, name string) ([]string, error) {
	m, err := manifest.Load(manifestData, name)
	if err != nil {
		return nil, err
	}
	return m.Names(), nil
}
