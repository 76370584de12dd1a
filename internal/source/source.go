package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/lintfix/cli"
	"github.com/sokinpui/lintfix/internal/manifest"
)

// Provider determines and retrieves the manifest content.
type Provider struct {
	path      string
	clipboard bool

	stdin         io.Reader
	readClipboard func() (string, error)
}

// New creates a new Provider.
func New(cfg *cli.Config) *Provider {
	return &Provider{
		path:          cfg.Manifest,
		clipboard:     cfg.Clipboard,
		stdin:         os.Stdin,
		readClipboard: clipboard.ReadAll,
	}
}

// Manifest returns the manifest data and a name whose extension selects the
// decoder. Sources in order: --manifest (a path, or '-' for stdin),
// --clipboard, then the built-in manifest. Stdin is only read for '-'.
func (p *Provider) Manifest() ([]byte, string, error) {
	switch {
	case p.path == "-":
		data, err := p.readStdin()
		return data, "stdin.yaml", err
	case p.path != "":
		data, err := os.ReadFile(p.path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read manifest: %w", err)
		}
		return data, p.path, nil
	case p.clipboard:
		content, err := p.readClipboard()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read from clipboard: %w", err)
		}
		if strings.TrimSpace(content) == "" {
			return nil, "", fmt.Errorf("clipboard is empty")
		}
		return []byte(content), "clipboard.yaml", nil
	}
	return manifest.Default(), manifest.DefaultName, nil
}

func (p *Provider) readStdin() ([]byte, error) {
	data, err := io.ReadAll(p.stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	return data, nil
}
