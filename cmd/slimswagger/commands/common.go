// Package commands provides CLI command handlers for slimswagger.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mikejonesguy/SlimSwagger/internal/cliutil"
	"github.com/mikejonesguy/SlimSwagger/node"
	"github.com/mikejonesguy/SlimSwagger/parser"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// validFormats lists the formats accepted by the list command.
var validFormats = []string{FormatText, FormatTable, FormatJSON, FormatYAML}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(validFormats, format) {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(validFormats, ", "))
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
// Returns an error if marshaling fails.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// MarshalDocument renders a document tree as YAML or as 2-space indented JSON.
func MarshalDocument(doc *node.Node, asYAML bool) ([]byte, error) {
	if asYAML {
		return doc.MarshalYAML()
	}
	return doc.MarshalJSONIndent("", "  ")
}

// FormatSpecPath returns a display-friendly spec path.
// Returns "<stdin>" for stdin input, otherwise returns the path unchanged.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// loadSource parses the source document from a file, a URL or stdin.
// insecure skips TLS certificate verification for https sources.
func loadSource(ctx context.Context, source string, insecure bool, logger parser.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{
		parser.WithContext(ctx),
		parser.WithLogger(logger),
		parser.WithInsecureSkipVerify(insecure),
	}
	if source == StdinFilePath {
		opts = append(opts, parser.WithReader(os.Stdin), parser.WithSourceName("stdin"))
	} else {
		opts = append(opts, parser.WithFilePath(source))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatSpecPath(source), err)
	}
	return result, nil
}
