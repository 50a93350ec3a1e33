package slimmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikejonesguy/SlimSwagger/internal/testutil"
	"github.com/mikejonesguy/SlimSwagger/oaserrors"
	"github.com/mikejonesguy/SlimSwagger/parser"
)

func TestSlimWithOptions_FilePath(t *testing.T) {
	path := testutil.WriteTempFile(t, "swagger.yaml", testutil.PetstoreOAS2YAML)

	result, err := SlimWithOptions(
		WithFilePath(path),
		WithOperations("getPet"),
		WithUserAgent("test-agent"),
	)
	require.NoError(t, err)
	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, parser.SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, []string{"Pet"}, result.RetainedSchemas)
}

func TestSlimWithOptions_Parsed(t *testing.T) {
	parsed, err := parser.ParseWithOptions(parser.WithBytes([]byte(testutil.PetstoreOAS3JSON)))
	require.NoError(t, err)
	original := parsed.Copy()

	result, err := SlimWithOptions(
		WithParsed(parsed),
		WithOperations("listPets"),
		WithOperations("getPet"),
		WithModels("Unused"),
		WithLogger(parser.NopLogger{}),
	)
	require.NoError(t, err)
	assert.Equal(t, "ParseBytes.json", result.SourcePath)
	assert.Equal(t, []string{"getPet", "listPets"}, result.RetainedOperations)
	assert.Equal(t, []string{"Error", "Pet", "Unused"}, result.RetainedSchemas)
	assert.Same(t, parsed.Document, result.Document)

	assert.Len(t, ListSchemaIDs(original.Document), 4, "copy is unaffected")
}

func TestSlimWithOptions_DocumentInvert(t *testing.T) {
	doc := testutil.MustDecode(t, testutil.PetstoreOAS3JSON)

	result, err := SlimWithOptions(
		WithDocument(doc),
		WithOperations("addPet", "listPets"),
		WithInvert(true),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"getPet"}, result.RetainedOperations)
	assert.Equal(t, []string{"Pet"}, result.RetainedSchemas)
}

func TestSlimWithOptions_EmptySelection(t *testing.T) {
	result, err := SlimWithOptions(WithDocument(testutil.MustDecode(t, testutil.PetstoreOAS2YAML)))
	require.NoError(t, err)
	assert.Equal(t, StatusNoOpEmptySelection, result.Status)
}

func TestSlimWithOptions_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantMsg string
	}{
		{"no source", []Option{WithOperations("a")}, "no input source specified"},
		{"two sources", []Option{WithFilePath("a.json"), WithDocument(testutil.MustDecode(t, `{}`))}, "multiple input sources"},
		{"nil parsed", []Option{WithParsed(nil)}, "parse result has no document"},
		{"nil document", []Option{WithDocument(nil)}, "document cannot be nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SlimWithOptions(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	t.Run("load failure", func(t *testing.T) {
		_, err := SlimWithOptions(WithFilePath(t.TempDir()+"/missing.json"), WithOperations("a"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slimmer:")
	})
}
