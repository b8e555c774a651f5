// Package fetch downloads the catalog XML to a local cache file.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"addon-catalog/internal/errors"
)

// DefaultTimeout bounds a catalog download.
const DefaultTimeout = 10 * time.Second

var httpClient = &http.Client{Timeout: DefaultTimeout}

// SetTimeout replaces the client timeout. Intended for configuration at
// startup, not for concurrent use.
func SetTimeout(d time.Duration) {
	httpClient = &http.Client{Timeout: d}
}

// Catalog downloads the document at url and writes it to destination,
// creating parent directories as needed. It returns the destination path.
// Network failures and non-2xx responses surface as typed network errors.
func Catalog(ctx context.Context, url, destination string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Network("invalid catalog URL", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", errors.Network(fmt.Sprintf("failed to fetch %s", url), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Newf(errors.TypeNetwork, "unexpected status fetching %s: %s", url, resp.Status)
	}

	if dir := filepath.Dir(destination); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Internal("failed to create cache directory", err)
		}
	}

	out, err := os.Create(destination)
	if err != nil {
		return "", errors.Internal("failed to create cache file", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", errors.Network("failed to save catalog", err)
	}
	return destination, nil
}
