package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestParseDefaults(t *testing.T) {
	unsetEnv(t, "LINTFIX_MANIFEST", "LINTFIX_ROOT", "LINTFIX_DIFF")

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Manifest)
	assert.Empty(t, cfg.Roots)
	assert.False(t, cfg.Diff)
	assert.False(t, cfg.TUI)
}

func TestParseFlags(t *testing.T) {
	unsetEnv(t, "LINTFIX_MANIFEST", "LINTFIX_ROOT", "LINTFIX_DIFF")
	cfg, err := Parse([]string{"-m", "fixes.yaml", "-C", "/a", "--root", "/b", "-b", "unused_imports,deprecated_member_use", "-d", "--no-color"})
	require.NoError(t, err)
	assert.Equal(t, "fixes.yaml", cfg.Manifest)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Roots)
	assert.Equal(t, []string{"unused_imports", "deprecated_member_use"}, cfg.Batches)
	assert.True(t, cfg.Diff)
	assert.True(t, cfg.NoColor)
}

func TestParseEnvironment(t *testing.T) {
	t.Setenv("LINTFIX_MANIFEST", "env.yaml")
	t.Setenv("LINTFIX_ROOT", "/x:/y")
	t.Setenv("LINTFIX_DIFF", "true")

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "env.yaml", cfg.Manifest)
	assert.Equal(t, []string{"/x", "/y"}, cfg.Roots)
	assert.True(t, cfg.Diff)

	cfg, err = Parse([]string{"-m", "flag.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "flag.yaml", cfg.Manifest)
}

func TestParseErrors(t *testing.T) {
	unsetEnv(t, "LINTFIX_MANIFEST", "LINTFIX_ROOT", "LINTFIX_DIFF")

	tests := []struct {
		name string
		args []string
	}{
		{"clipboard with manifest", []string{"-c", "-m", "x.yaml"}},
		{"tui with diff", []string{"--tui", "-d"}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			require.Error(t, err)
		})
	}

	t.Setenv("LINTFIX_DIFF", "maybe")
	_, err := Parse(nil)
	require.Error(t, err)

	os.Unsetenv("LINTFIX_DIFF")
	_, err = Parse([]string{"-h"})
	assert.True(t, errors.Is(err, pflag.ErrHelp))
}
