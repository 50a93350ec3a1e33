// Package cliutil provides utilities for CLI operations shared by the
// slimswagger command and the MCP server.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikejonesguy/SlimSwagger/internal/httputil"
)

// DefaultOutputName is the file name used when no output file is given.
const DefaultOutputName = "slim-swagger.json"

// OwnerReadWrite is the file permission mode for slimmed documents.
const OwnerReadWrite os.FileMode = 0o600

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// ResolveOutputPath returns the file the slimmed document is written to.
//
// An empty output means "next to the source": the source directory for file
// sources, the working directory for URL sources. An output ending in a path
// separator names a directory and gets DefaultOutputName appended.
func ResolveOutputPath(source, output string) string {
	if output == "" {
		dir := "."
		if !httputil.IsURL(source) && source != "" && source != "-" {
			dir = filepath.Dir(source)
		}
		return filepath.Join(dir, DefaultOutputName)
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(output, DefaultOutputName)
	}
	return output
}

// ValidateOutputPath checks that writing outputPath will not clobber one of
// the inputs or follow a symlink.
func ValidateOutputPath(outputPath string, inputPaths ...string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("cliutil: invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == "" || httputil.IsURL(inputPath) {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("cliutil: invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("cliutil: output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	return RejectSymlinkOutput(filepath.Clean(outputPath))
}

// RejectSymlinkOutput returns an error if cleanedPath is a symlink.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cliutil: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("cliutil: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// WriteOutput writes data to path, creating parent directories as needed.
func WriteOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cliutil: creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("cliutil: writing output file: %w", err)
	}
	return nil
}

// IsYAMLPath reports whether path has a .yaml or .yml extension.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
