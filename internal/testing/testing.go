// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/jsingh/trendtracker/internal/services"
)

// CatalogStub is a test double for [services.Catalog] driven by function fields.
type CatalogStub struct {
	SearchFunc func(ctx context.Context, query string) (*services.SpotifyAlbum, error)
	AlbumFunc  func(ctx context.Context, id string) (*services.SpotifyAlbum, error)

	SearchCalls int
	AlbumCalls  int
}

func (c *CatalogStub) SearchAlbum(ctx context.Context, query string) (*services.SpotifyAlbum, error) {
	c.SearchCalls++
	if c.SearchFunc == nil {
		return nil, nil
	}
	return c.SearchFunc(ctx, query)
}

func (c *CatalogStub) Album(ctx context.Context, id string) (*services.SpotifyAlbum, error) {
	c.AlbumCalls++
	if c.AlbumFunc == nil {
		return nil, nil
	}
	return c.AlbumFunc(ctx, id)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// IntPtr returns a pointer to v, a convenience for optional integer fields.
func IntPtr(v int) *int {
	return &v
}
