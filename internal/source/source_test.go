package source

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/lintfix/cli"
	"github.com/sokinpui/lintfix/internal/manifest"
)

// countingReader records whether the provider touched stdin.
type countingReader struct {
	r     io.Reader
	reads int
}

func (c *countingReader) Read(b []byte) (int, error) {
	c.reads++
	return c.r.Read(b)
}

func newProvider(cfg *cli.Config, stdin string, clip string, clipErr error) *Provider {
	p := New(cfg)
	p.stdin = strings.NewReader(stdin)
	p.readClipboard = func() (string, error) { return clip, clipErr }
	return p
}

func TestManifestSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixes.md")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0644))

	tests := []struct {
		name     string
		cfg      cli.Config
		stdin    string
		clip     string
		wantData string
		wantName string
	}{
		{"explicit path", cli.Config{Manifest: path}, "ignored", "", "from file", path},
		{"dash reads stdin", cli.Config{Manifest: "-"}, "from stdin", "", "from stdin", "stdin.yaml"},
		{"clipboard", cli.Config{Clipboard: true}, "ignored", "from clipboard", "from clipboard", "clipboard.yaml"},
		{"stdin content ignored without dash", cli.Config{}, "deploy done", "", string(manifest.Default()), manifest.DefaultName},
		{"built-in", cli.Config{}, "", "", string(manifest.Default()), manifest.DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProvider(&tt.cfg, tt.stdin, tt.clip, nil)
			data, name, err := p.Manifest()
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, string(data))
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestManifestSourceErrors(t *testing.T) {
	_, _, err := newProvider(&cli.Config{Manifest: filepath.Join(t.TempDir(), "missing.yaml")}, "", "", nil).Manifest()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, _, err = newProvider(&cli.Config{Clipboard: true}, "", "", errors.New("no clipboard utility")).Manifest()
	require.Error(t, err)

	_, _, err = newProvider(&cli.Config{Clipboard: true}, "", "   ", nil).Manifest()
	require.Error(t, err)
}

func TestBuiltInNeverReadsStdin(t *testing.T) {
	stdin := &countingReader{r: strings.NewReader("deploy done\n")}
	p := newProvider(&cli.Config{}, "", "", nil)
	p.stdin = stdin

	data, name, err := p.Manifest()
	require.NoError(t, err)
	assert.Equal(t, manifest.DefaultName, name)
	assert.Equal(t, manifest.Default(), data)
	assert.Zero(t, stdin.reads)
}
