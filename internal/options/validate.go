// Package options provides shared utilities for option validation across packages.
package options

import "github.com/mikejonesguy/SlimSwagger/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// option names the offending option group in the returned *oaserrors.ConfigError,
// and sources is a variadic list of booleans indicating whether each source is set.
func ValidateSingleInputSource(option, noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	switch {
	case sourceCount == 0:
		return &oaserrors.ConfigError{Option: option, Message: noSourceMsg}
	case sourceCount > 1:
		return &oaserrors.ConfigError{Option: option, Value: sourceCount, Message: multiSourceMsg}
	}
	return nil
}
