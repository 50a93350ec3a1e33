package slimmer

import (
	"fmt"

	"github.com/mikejonesguy/SlimSwagger/internal/options"
	"github.com/mikejonesguy/SlimSwagger/node"
	"github.com/mikejonesguy/SlimSwagger/oaserrors"
	"github.com/mikejonesguy/SlimSwagger/parser"
)

// Option is a function that configures a slim operation
type Option func(*slimConfig) error

// slimConfig holds configuration for a slim operation
type slimConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult
	document *node.Node

	operations []string
	models     []string
	invert     bool
	userAgent  string
	logger     parser.Logger
}

// SlimWithOptions slims a document using functional options.
//
// Example:
//
//	result, err := slimmer.SlimWithOptions(
//	    slimmer.WithFilePath("swagger.json"),
//	    slimmer.WithOperations("getPetById", "addPet"),
//	)
func SlimWithOptions(opts ...Option) (*SlimResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("slimmer: invalid options: %w", err)
	}

	s := &Slimmer{Logger: cfg.logger}

	switch {
	case cfg.filePath != nil:
		return s.Slim(*cfg.filePath, cfg.operations, cfg.models, cfg.invert, cfg.userAgent)
	case cfg.parsed != nil:
		return s.SlimParsed(cfg.parsed, cfg.operations, cfg.models, cfg.invert), nil
	case cfg.document != nil:
		return s.Filter(cfg.document, cfg.operations, cfg.models, cfg.invert), nil
	}

	// Should never reach here due to validation in applyOptions
	return nil, fmt.Errorf("slimmer: no input source specified")
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*slimConfig, error) {
	cfg := &slimConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"input",
		"no input source specified: use WithFilePath, WithParsed or WithDocument",
		"multiple input sources specified: use only one of WithFilePath, WithParsed or WithDocument",
		cfg.filePath != nil, cfg.parsed != nil, cfg.document != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Slim loads specPath (file or URL) and slims it.
func (s *Slimmer) Slim(specPath string, operations, models []string, invert bool, userAgent string) (*SlimResult, error) {
	p := parser.New()
	p.Logger = s.Logger
	if userAgent != "" {
		p.UserAgent = userAgent
	}
	parsed, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("slimmer: %w", err)
	}
	return s.SlimParsed(parsed, operations, models, invert), nil
}

// SlimParsed slims an already-parsed document in place. Use
// parser.ParseResult.Copy first to keep the original.
func (s *Slimmer) SlimParsed(parsed *parser.ParseResult, operations, models []string, invert bool) *SlimResult {
	result := s.Filter(parsed.Document, operations, models, invert)
	result.SourcePath = parsed.SourcePath
	result.SourceFormat = parsed.SourceFormat
	return result
}

// WithFilePath specifies the file path (local file or URL) to slim
func WithFilePath(path string) Option {
	return func(cfg *slimConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed document to slim. Its Document is mutated.
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *slimConfig) error {
		if result == nil || result.Document == nil {
			return &oaserrors.ConfigError{Option: "WithParsed", Message: "parse result has no document"}
		}
		cfg.parsed = result
		return nil
	}
}

// WithDocument specifies a document tree to slim in place.
func WithDocument(doc *node.Node) Option {
	return func(cfg *slimConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "WithDocument", Message: "document cannot be nil"}
		}
		cfg.document = doc
		return nil
	}
}

// WithOperations sets the operation identifiers to keep (or, with
// WithInvert, to remove). Repeated calls append.
func WithOperations(ids ...string) Option {
	return func(cfg *slimConfig) error {
		cfg.operations = append(cfg.operations, ids...)
		return nil
	}
}

// WithModels sets supplemental schema identifiers: kept regardless of
// reachability, or with WithInvert, removed regardless. Repeated calls append.
func WithModels(ids ...string) Option {
	return func(cfg *slimConfig) error {
		cfg.models = append(cfg.models, ids...)
		return nil
	}
}

// WithInvert turns the operations and models lists into deny-lists
// Default: false
func WithInvert(invert bool) Option {
	return func(cfg *slimConfig) error {
		cfg.invert = invert
		return nil
	}
}

// WithUserAgent sets the User-Agent used when WithFilePath names a URL
func WithUserAgent(userAgent string) Option {
	return func(cfg *slimConfig) error {
		cfg.userAgent = userAgent
		return nil
	}
}

// WithLogger sets a structured logger for diagnostics.
// By default, no logging is performed (nil logger).
func WithLogger(l parser.Logger) Option {
	return func(cfg *slimConfig) error {
		cfg.logger = l
		return nil
	}
}
