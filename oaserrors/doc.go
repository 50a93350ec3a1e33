// Package oaserrors provides structured error types for SlimSwagger.
//
// Import path: github.com/mikejonesguy/SlimSwagger/oaserrors
//
// Errors only originate at the I/O boundary: loading a source document,
// reading a selection list, or writing output. The slimming engine itself
// never fails on irregular document shapes; it treats missing structure as
// empty.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures and structural issues
//   - [FetchError]: HTTP retrieval failures for documents and lists
//   - [SelectionError]: unusable operation or model selection lists
//   - [ResourceLimitError]: size limits exceeded while loading
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrFetch]: Matches any [FetchError]
//   - [ErrSelection]: Matches any [SelectionError]
//   - [ErrEmptySelection]: Matches [SelectionError] with Empty=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	ops, err := selection.ReadWithOptions(selection.WithFilePath("ops.txt"))
//	if errors.Is(err, oaserrors.ErrEmptySelection) {
//	    // nothing to slim to
//	}
//
//	var fetchErr *oaserrors.FetchError
//	if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound {
//	    // wrong URL
//	}
package oaserrors
