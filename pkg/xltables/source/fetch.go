// Package source retrieves workbook bytes from a URL or a local file.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Fetcher retrieves the raw bytes of a workbook.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Location describes where the bytes come from, for logs and errors.
	Location() string
}

// New returns a Fetcher for location: http(s) URLs are downloaded, file://
// URLs and plain paths are read from disk.
func New(location string, timeout time.Duration) (Fetcher, error) {
	if location == "" {
		return nil, fmt.Errorf("empty workbook location")
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// No scheme, or a Windows drive letter.
		return &FileFetcher{Path: location}, nil
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHTTPFetcher(location, timeout), nil
	case "file":
		return &FileFetcher{Path: u.Path}, nil
	default:
		return nil, fmt.Errorf("unsupported workbook location scheme %q", u.Scheme)
	}
}

// HTTPFetcher downloads a workbook with a GET request.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher whose client gives up after timeout.
func NewHTTPFetcher(rawURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		URL:    rawURL,
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch implements Fetcher.
func (h *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, h.URL)
	}

	return io.ReadAll(resp.Body)
}

// Location implements Fetcher.
func (h *HTTPFetcher) Location() string {
	return h.URL
}

// FileFetcher reads a workbook from the local filesystem.
type FileFetcher struct {
	Path string
}

// Fetch implements Fetcher.
func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(f.Path)
}

// Location implements Fetcher.
func (f *FileFetcher) Location() string {
	return f.Path
}

// Static serves fixed bytes. It is used for tests and for workbooks that
// are already in memory.
type Static struct {
	Name string
	Data []byte
}

// Fetch implements Fetcher.
func (s *Static) Fetch(ctx context.Context) ([]byte, error) {
	return s.Data, nil
}

// Location implements Fetcher.
func (s *Static) Location() string {
	return s.Name
}
