package slimswagger

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVersion verifies that Version() returns either the development marker or a release tag.
func TestVersion(t *testing.T) {
	result := Version()

	assert.NotEmpty(t, result)
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestUserAgent(t *testing.T) {
	result := UserAgent()

	parts := strings.SplitN(result, "/", 2)
	require.Len(t, parts, 2, "UserAgent() should have format 'SlimSwagger/{version}'")
	assert.Equal(t, "SlimSwagger", parts[0])
	assert.Equal(t, Version(), parts[1])

	// Must be usable as an HTTP header value
	assert.NotContains(t, result, " ")
	assert.NotContains(t, result, "\n")
	assert.NotContains(t, result, "\r")
}

func TestBuildInfo(t *testing.T) {
	result := BuildInfo()

	assert.Contains(t, result, "Version: "+Version())
	assert.Contains(t, result, "Commit: "+Commit())
	assert.Contains(t, result, "Go Version: "+runtime.Version())
}
