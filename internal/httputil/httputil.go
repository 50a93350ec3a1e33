// Package httputil provides the HTTP method vocabulary used by path-items and
// a bounded HTTP fetch shared by the document and selection-list loaders.
package httputil

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mikejonesguy/SlimSwagger/oaserrors"
)

// HTTP Method Constants, as they appear as path-item keys
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
	MethodQuery   = "query" // OAS 3.2+ only
)

// DefaultTimeout bounds a fetch when no client is supplied.
const DefaultTimeout = 30 * time.Second

// DefaultMaxSize is the largest response body accepted when no limit is set (64 MiB).
const DefaultMaxSize int64 = 64 << 20

var methods = map[string]bool{
	MethodGet:     true,
	MethodPut:     true,
	MethodPost:    true,
	MethodDelete:  true,
	MethodOptions: true,
	MethodHead:    true,
	MethodPatch:   true,
	MethodTrace:   true,
	MethodQuery:   true,
}

// IsMethod reports whether key names an operation slot of a path-item.
// Matching is case-sensitive: OpenAPI requires lowercase method keys.
func IsMethod(key string) bool {
	return methods[key]
}

// IsURL determines if the given locator is an http:// or https:// URL
func IsURL(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}

// FetchOptions configures Fetch. The zero value is usable.
type FetchOptions struct {
	// Client is used when set; otherwise a client with DefaultTimeout is created
	Client *http.Client
	// UserAgent is sent as the User-Agent header when non-empty
	UserAgent string
	// MaxSize caps the response body; 0 means DefaultMaxSize
	MaxSize int64
	// InsecureSkipVerify disables TLS verification for the default client
	InsecureSkipVerify bool
}

// Fetch retrieves url and returns the body and its Content-Type header.
// Non-200 responses and oversized bodies are reported as errors.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, string, error) {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
		if opts.InsecureSkipVerify {
			client.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, //nolint:gosec // user explicitly requested insecure mode
					MinVersion:         tls.VersionTLS12,
				},
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &oaserrors.FetchError{URL: url, Message: "failed to create request", Cause: err}
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, "", &oaserrors.FetchError{URL: url, Message: "request failed", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &oaserrors.FetchError{URL: url, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	limit := opts.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	// Read one byte past the limit so an exact-size body is still accepted.
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", &oaserrors.FetchError{URL: url, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("httputil: %s: %w", url, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      "response body too large",
		})
	}

	return data, resp.Header.Get("Content-Type"), nil
}
