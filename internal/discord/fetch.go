package discord

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/vencordbg/internal/security"
	httputil "github.com/jmylchreest/vencordbg/internal/util/http"
)

// MaxThemeSize bounds the size of a downloaded theme.
const MaxThemeSize = 2 << 20

// Fetcher downloads theme stylesheets.
type Fetcher struct {
	Options httputil.FetchOptions

	// validate checks the URL before any request is made.
	validate func(string) error
}

// NewFetcher returns a Fetcher that only accepts public HTTPS URLs.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Options:  httputil.FetchOptions{MaxBytes: MaxThemeSize},
		validate: security.ValidateHTTPURL,
	}
}

// FetchTheme downloads url to dest using a default Fetcher.
func FetchTheme(ctx context.Context, url, dest string) error {
	return NewFetcher().Fetch(ctx, url, dest)
}

// Fetch downloads url and writes it to dest, creating parent directories.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	if f.validate != nil {
		if err := f.validate(url); err != nil {
			return fmt.Errorf("invalid theme URL: %w", err)
		}
	}

	data, err := httputil.Fetch(ctx, url, f.Options)
	if err != nil {
		return fmt.Errorf("failed to download theme: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("downloaded theme is empty")
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil { // #nosec G301 - Themes directory needs standard permissions
		return fmt.Errorf("failed to create themes directory: %w", err)
	}

	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { // #nosec G306 - Theme files need standard read permissions
		return fmt.Errorf("failed to write theme: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write theme: %w", err)
	}

	return nil
}
