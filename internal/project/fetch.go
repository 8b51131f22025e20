package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// ErrStatus is returned by HTTPFetcher for any non-200 response.
var ErrStatus = errors.New("unexpected response status")

// Fetcher retrieves a document by its application-relative path
// ("./config/config.json", "projects/default/project.json", ...).
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FSFetcher reads documents from a filesystem rooted at the application root.
type FSFetcher struct {
	FS fs.FS
}

// Fetch implements Fetcher.
func (f FSFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(f.FS, FSPath(name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// FSPath turns an application-relative reference into an fs.FS path.
func FSPath(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// HTTPFetcher retrieves documents relative to a base URL.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for documents served under base.
func NewHTTPFetcher(base string, client *http.Client) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing source url %q: %w", base, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{base: u, client: client}, nil
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(strings.TrimLeft(name, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing document path %q: %w", name, err)
	}
	target := f.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %w: %d", target, ErrStatus, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	return data, nil
}
