package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/lintfix/cli"
	"github.com/sokinpui/lintfix/internal/ui"
	"github.com/sokinpui/lintfix/lintfix"
)

const plainManifest = `
batches:
  - name: sized_box
    title: "Batch 2: sized_box_for_whitespace"
    targets:
      - path: lib/a.dart
        message: "{{ .Name }}: Container -> SizedBox"
        patches:
          - literal: "return Container("
            replace: "return SizedBox("
  - name: missing
    title: "Batch 5: deprecated_member_use"
    targets:
      - path: lib/missing.dart
        patches:
          - literal: "x"
`

func setup(t *testing.T) (*bytes.Buffer, *lintfix.App) {
	t.Helper()
	ui.DisableColor()
	var out, errOut bytes.Buffer
	ui.SetOutput(&out, &errOut)
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "a.dart"), []byte("return Container(\n"), 0644))
	manifest := filepath.Join(t.TempDir(), "fixes.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(plainManifest), 0644))

	app, err := lintfix.New(&cli.Config{Manifest: manifest, Roots: []string{root}})
	require.NoError(t, err)
	return &out, app
}

func TestRunPlainPrintsPartialReportOnError(t *testing.T) {
	out, app := setup(t)

	err := runPlain(app, true)
	require.Error(t, err)

	got := out.String()
	assert.Contains(t, got, "=== Lint fixes ===\n\nBatch 2: sized_box_for_whitespace\n[OK] a.dart: Container -> SizedBox\n")
	assert.Contains(t, got, "-return Container(\n+return SizedBox(\n")
	assert.True(t, strings.HasSuffix(got, "\nBatch 5: deprecated_member_use\n"), got)
	assert.NotContains(t, got, "[OK] Already fixed")
	assert.NotContains(t, got, "=== Total")
}
