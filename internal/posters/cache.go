package posters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Cache stores downloaded poster images under a single directory, one file
// per remote link. Downloads are idempotent: a link whose file already
// exists is returned without touching the network.
type Cache struct {
	dir        string
	httpClient *http.Client
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a poster cache rooted at dir.
func New(dir string, opts ...Option) (*Cache, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("poster directory required")
	}
	cache := &Cache{
		dir:        dir,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// EnsureCached returns the local path for the poster at remoteLink,
// downloading it first if it is not already cached.
func (c *Cache) EnsureCached(ctx context.Context, remoteLink string) (string, error) {
	remoteLink = strings.TrimSpace(remoteLink)
	if remoteLink == "" {
		return "", errors.New("poster link is empty")
	}

	name, err := fileNameFor(remoteLink)
	if err != nil {
		return "", err
	}
	target := filepath.Join(c.dir, name)

	if _, err := os.Stat(target); err == nil {
		return target, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat cached poster: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create poster directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteLink, nil)
	if err != nil {
		return "", fmt.Errorf("build poster request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch poster: unexpected status %d", resp.StatusCode)
	}

	// Write to a temp file first so a failed download never leaves a
	// truncated poster behind.
	tmp, err := os.CreateTemp(c.dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp poster: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write poster: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp poster: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("move poster into place: %w", err)
	}

	return target, nil
}

// fileNameFor derives a stable cache filename from a poster URL. IMDb image
// links carry rendering directives after an @ marker; everything from the
// marker on is dropped so re-fetches of the same artwork hit the same file.
func fileNameFor(remoteLink string) (string, error) {
	parsed, err := url.Parse(remoteLink)
	if err != nil {
		return "", fmt.Errorf("parse poster link: %w", err)
	}
	base := path.Base(parsed.Path)
	if idx := strings.Index(base, "@"); idx >= 0 {
		base = base[:idx]
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" {
		return "", fmt.Errorf("poster link %q has no usable filename", remoteLink)
	}
	return base + ".jpg", nil
}
