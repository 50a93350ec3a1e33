// Package selection reads the newline-delimited operation and model lists
// that drive a slim run.
//
// A list is plain text with one identifier per line. Lines are trimmed, blank
// lines are dropped and repeated entries are kept once, at their first
// position. A list with no entries left is reported as a
// [oaserrors.SelectionError] with Empty set, so callers can decide whether
// that aborts the run (operations list) or is only a warning (models list):
//
//	ops, err := selection.ReadWithOptions(selection.WithFilePath("ops.txt"))
//	if errors.Is(err, oaserrors.ErrEmptySelection) {
//		// nothing selected
//	}
package selection

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	slimswagger "github.com/mikejonesguy/SlimSwagger"
	"github.com/mikejonesguy/SlimSwagger/internal/httputil"
	"github.com/mikejonesguy/SlimSwagger/internal/options"
	"github.com/mikejonesguy/SlimSwagger/oaserrors"
)

// DefaultMaxSize caps a list file (1 MiB).
const DefaultMaxSize int64 = 1 << 20

// Parse splits text into trimmed, non-blank, de-duplicated lines, preserving
// first-seen order. It never returns nil.
func Parse(text string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 4096), int(DefaultMaxSize))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return Normalize(lines)
}

// Normalize trims entries, drops blank ones and keeps repeated entries once,
// at their first position. It never returns nil.
func Normalize(entries []string) []string {
	out := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		out = append(out, entry)
	}
	return out
}

// Option is a function that configures a list read
type Option func(*readConfig) error

type readConfig struct {
	filePath *string
	reader   io.Reader

	ctx        context.Context
	sourceName string
	httpClient *http.Client
	userAgent  string
	maxSize    int64
	insecure   bool
}

// ReadWithOptions reads and parses a list from exactly one source.
// An empty result is returned together with a *oaserrors.SelectionError
// whose Empty field is set.
func ReadWithOptions(opts ...Option) ([]string, error) {
	cfg := &readConfig{
		ctx:       context.Background(),
		userAgent: slimswagger.UserAgent(),
		maxSize:   DefaultMaxSize,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("selection: invalid options: %w", err)
		}
	}
	if err := options.ValidateSingleInputSource(
		"input",
		"selection: must specify an input source (use WithFilePath or WithReader)",
		"selection: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil,
	); err != nil {
		return nil, fmt.Errorf("selection: invalid options: %w", err)
	}

	source := cfg.sourceName
	var data []byte
	var err error
	switch {
	case cfg.filePath != nil && httputil.IsURL(*cfg.filePath):
		if source == "" {
			source = *cfg.filePath
		}
		data, _, err = httputil.Fetch(cfg.ctx, *cfg.filePath, httputil.FetchOptions{
			Client:             cfg.httpClient,
			UserAgent:          cfg.userAgent,
			MaxSize:            cfg.maxSize,
			InsecureSkipVerify: cfg.insecure,
		})
	case cfg.filePath != nil:
		if source == "" {
			source = *cfg.filePath
		}
		data, err = readFile(*cfg.filePath, cfg.maxSize)
	default:
		if source == "" {
			source = "<reader>"
		}
		data, err = readAll(cfg.reader, cfg.maxSize)
	}
	if err != nil {
		return nil, &oaserrors.SelectionError{Source: source, Message: "failed to read list", Cause: err}
	}

	entries := Parse(string(data))
	if len(entries) == 0 {
		return entries, &oaserrors.SelectionError{Source: source, Empty: true}
	}
	return entries, nil
}

// Read reads a list from a file path or http(s) URL.
func Read(ctx context.Context, locator string) ([]string, error) {
	return ReadWithOptions(WithFilePath(locator), WithContext(ctx))
}

func readFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided input
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return readAll(f, limit)
}

func readAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      "list too large",
		}
	}
	return data, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *readConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *readConfig) error {
		if r == nil {
			return fmt.Errorf("selection: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithSourceName names the source in errors. Defaults to the path or URL,
// or "<reader>" for readers.
func WithSourceName(name string) Option {
	return func(cfg *readConfig) error {
		cfg.sourceName = name
		return nil
	}
}

// WithContext sets the context used for URL fetches.
func WithContext(ctx context.Context) Option {
	return func(cfg *readConfig) error {
		if ctx == nil {
			return fmt.Errorf("selection: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *readConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithInsecureSkipVerify disables TLS certificate verification for HTTPS
// lists. It has no effect when WithHTTPClient is also given.
func WithInsecureSkipVerify(enabled bool) Option {
	return func(cfg *readConfig) error {
		cfg.insecure = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
func WithUserAgent(ua string) Option {
	return func(cfg *readConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithMaxSize sets the largest accepted list in bytes. 0 means DefaultMaxSize.
func WithMaxSize(size int64) Option {
	return func(cfg *readConfig) error {
		if size < 0 {
			return fmt.Errorf("selection: maxSize cannot be negative")
		}
		if size > 0 {
			cfg.maxSize = size
		}
		return nil
	}
}
