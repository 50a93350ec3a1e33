package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/mikejonesguy/SlimSwagger/internal/testutil"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid table", FormatTable, false},
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"operations": []string{"getPet"}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatJSON))
		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []any{"getPet"}, got["operations"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatYAML))
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []any{"getPet"}, got["operations"])
	})

	t.Run("invalid", func(t *testing.T) {
		assert.Error(t, OutputStructured(&bytes.Buffer{}, data, FormatText))
	})
}

func TestMarshalDocument(t *testing.T) {
	doc := testutil.MustDecode(t, "swagger: \"2.0\"\npaths: {}\n")

	jsonData, err := MarshalDocument(doc, false)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"swagger\": \"2.0\",\n  \"paths\": {}\n}\n", string(jsonData))

	yamlData, err := MarshalDocument(doc, true)
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "swagger:")
	assert.NotContains(t, string(yamlData), "{\n")
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}
