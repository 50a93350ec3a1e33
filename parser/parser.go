package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	slimswagger "github.com/mikejonesguy/SlimSwagger"
	"github.com/mikejonesguy/SlimSwagger/internal/httputil"
	"github.com/mikejonesguy/SlimSwagger/node"
	"github.com/mikejonesguy/SlimSwagger/oaserrors"
)

// Parser loads OpenAPI/Swagger documents into a node tree
type Parser struct {
	// InsecureSkipVerify disables TLS certificate verification when fetching URLs.
	// Use with caution - only enable for testing or internal servers with self-signed certs
	InsecureSkipVerify bool
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "SlimSwagger/<version>" if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	// When set, InsecureSkipVerify is ignored (configure TLS on your client's transport).
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxFileSize is the maximum source size in bytes.
	// Default: 64 MiB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: slimswagger.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return httputil.DefaultMaxSize
}

// ParseResult contains the parsed document and metadata about its source.
//
// Document is mutable: the slimmer prunes it in place. Use Copy to keep an
// untouched original.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the value of the root "swagger" or "openapi" field, if present
	Version string
	// Document is the root mapping of the parsed document
	Document *node.Node
	// Warnings contains non-fatal issues such as a missing version field
	Warnings []string
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// IsOAS2 returns true if the document declares swagger: "2.0".
func (pr *ParseResult) IsOAS2() bool {
	return pr.Version == "2.0"
}

// IsOAS3 returns true if the document declares an openapi 3.x version.
func (pr *ParseResult) IsOAS3() bool {
	return strings.HasPrefix(pr.Version, "3.")
}

// Copy creates a deep copy of the ParseResult, including the document tree.
//
// Example:
//
//	original, _ := parser.ParseWithOptions(parser.WithFilePath("swagger.json"))
//	working := original.Copy()
//	// Slim 'working' without affecting 'original'
func (pr *ParseResult) Copy() *ParseResult {
	if pr == nil {
		return nil
	}
	result := *pr
	result.Document = pr.Document.Clone()
	if pr.Warnings != nil {
		result.Warnings = make([]string, len(pr.Warnings))
		copy(result.Warnings, pr.Warnings)
	}
	return &result
}

// Parse parses a document file or URL.
// For URLs (http:// or https://), the content is fetched and parsed.
// For local files, the file is read and parsed.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	return p.ParseContext(context.Background(), specPath)
}

// ParseContext is like Parse but uses ctx for URL fetches.
func (p *Parser) ParseContext(ctx context.Context, specPath string) (*ParseResult, error) {
	var (
		data     []byte
		format   SourceFormat
		loadTime time.Duration
		err      error
	)

	loadStart := time.Now()
	if httputil.IsURL(specPath) {
		var contentType string
		data, contentType, err = p.fetchURL(ctx, specPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
	} else {
		data, err = p.readFile(specPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromPath(specPath)
	}

	res, err := p.parseData(data, specPath)
	if err != nil {
		return nil, err
	}

	res.SourcePath = specPath
	res.LoadTime = loadTime
	res.SourceSize = int64(len(data))
	if format != SourceFormatUnknown {
		res.SourceFormat = format
	}

	p.log().Debug("loaded document",
		"source", specPath,
		"format", res.SourceFormat,
		"version", res.Version,
		"size", FormatBytes(res.SourceSize),
		"loadTime", res.LoadTime)

	return res, nil
}

// ParseReader parses a document from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	limit := p.maxFileSize()
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("parser: %w", &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      "input too large",
		})
	}

	res, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + sourceExt(res.SourceFormat)
	return res, nil
}

// ParseBytes parses a document from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	format := detectFormatFromContent(data)
	sourcePath := "ParseBytes." + sourceExt(format)

	res, err := p.parseData(data, sourcePath)
	if err != nil {
		return nil, err
	}
	res.SourcePath = sourcePath
	res.SourceSize = int64(len(data))
	return res, nil
}

func sourceExt(format SourceFormat) string {
	if format == SourceFormatJSON {
		return "json"
	}
	return "yaml"
}

// parseData decodes data into a tree and inspects its root. sourcePath is
// used only for error messages.
func (p *Parser) parseData(data []byte, sourcePath string) (*ParseResult, error) {
	result := &ParseResult{
		SourceFormat: detectFormatFromContent(data),
		Warnings:     make([]string, 0),
	}

	doc, err := node.Decode(data)
	if err != nil {
		msg := "failed to parse YAML/JSON"
		if errors.Is(err, node.ErrEmptyDocument) {
			msg = "document is empty"
		}
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: msg, Cause: err}
	}
	if !doc.IsMapping() {
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: fmt.Sprintf("document root must be a mapping, got %s", doc.Kind),
		}
	}
	result.Document = doc

	version, ok := detectVersion(doc)
	switch {
	case !ok:
		result.Warnings = append(result.Warnings,
			"unable to detect OpenAPI version: document has neither 'swagger' nor 'openapi' at the root level")
	case version != "2.0" && !strings.HasPrefix(version, "3."):
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unrecognized OpenAPI version %q (expected 2.0 or 3.x)", version))
	}
	result.Version = version

	for _, w := range result.Warnings {
		p.log().Warn(w, "source", sourcePath)
	}

	return result, nil
}

// detectVersion returns the root "swagger" (OAS 2.0) or "openapi" (OAS 3.x) value
func detectVersion(doc *node.Node) (string, bool) {
	if v := doc.GetString("swagger"); v != "" {
		return v, true
	}
	if v := doc.GetString("openapi"); v != "" {
		return v, true
	}
	return "", false
}

// readFile reads a local file, refusing files over the size limit before
// reading them.
func (p *Parser) readFile(path string) ([]byte, error) {
	limit := p.maxFileSize()
	if info, err := os.Stat(path); err == nil && info.Size() > limit {
		return nil, fmt.Errorf("parser: %s: %w", path, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       info.Size(),
			Message:      "file too large",
		})
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided input
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header
func (p *Parser) fetchURL(ctx context.Context, urlStr string) ([]byte, string, error) {
	if p.HTTPClient != nil && p.InsecureSkipVerify {
		p.log().Warn("InsecureSkipVerify ignored when HTTPClient provided; configure TLS on your client's transport")
	}

	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = slimswagger.UserAgent()
	}

	data, contentType, err := httputil.Fetch(ctx, urlStr, httputil.FetchOptions{
		Client:             p.HTTPClient,
		UserAgent:          userAgent,
		MaxSize:            p.maxFileSize(),
		InsecureSkipVerify: p.InsecureSkipVerify,
	})
	if err != nil {
		return nil, "", fmt.Errorf("parser: %w", err)
	}
	return data, contentType, nil
}
