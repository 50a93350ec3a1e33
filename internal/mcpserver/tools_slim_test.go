package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikejonesguy/SlimSwagger/internal/testutil"
	"github.com/mikejonesguy/SlimSwagger/node"
	"github.com/mikejonesguy/SlimSwagger/slimmer"
)

func TestSlimTool_Inline(t *testing.T) {
	specCache.reset()
	input := slimInput{
		Spec:       specInput{Content: testutil.PetstoreOAS2YAML},
		Operations: []string{" getPet ", "getPet"},
	}

	result, output, err := handleSlim(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Equal(t, "applied", output.Status)
	assert.Equal(t, slimStats{OriginalOperations: 2, OriginalSchemas: 3, SlimmedOperations: 1, SlimmedSchemas: 1}, output.Stats)
	assert.Equal(t, []string{"getPet"}, output.RetainedOperations)
	assert.Equal(t, []string{"listPets"}, output.RemovedOperations)
	assert.Equal(t, []string{"Pet"}, output.RetainedSchemas)
	assert.Equal(t, []string{"/pets"}, output.RemovedPaths)
	assert.Empty(t, output.WrittenTo)

	doc, err := node.Decode([]byte(output.Document))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pet"}, slimmer.ListSchemaIDs(doc))
}

func TestSlimTool_DoesNotMutateCachedDocument(t *testing.T) {
	specCache.reset()
	spec := specInput{Content: testutil.PetstoreOAS3JSON}

	_, _, err := handleSlim(context.Background(), &mcp.CallToolRequest{}, slimInput{Spec: spec, Operations: []string{"getPet"}})
	require.NoError(t, err)

	cached, err := spec.resolve(context.Background())
	require.NoError(t, err)
	assert.Len(t, slimmer.ListOperationIDs(cached.Document, false), 3)
	assert.Len(t, slimmer.ListSchemaIDs(cached.Document), 4)
}

func TestSlimTool_InvertWithModels(t *testing.T) {
	specCache.reset()
	input := slimInput{
		Spec:       specInput{Content: testutil.PetstoreOAS3JSON},
		Operations: []string{"addPet"},
		Models:     []string{"Error"},
		Invert:     true,
	}

	_, output, err := handleSlim(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, []string{"getPet", "listPets"}, output.RetainedOperations)
	assert.Equal(t, []string{"Pet"}, output.RetainedSchemas)
	assert.ElementsMatch(t, []string{"Error", "NewPet", "Unused"}, output.RemovedSchemas)
}

func TestSlimTool_EmptySelection(t *testing.T) {
	specCache.reset()
	input := slimInput{Spec: specInput{Content: testutil.PetstoreOAS2YAML}}

	_, output, err := handleSlim(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, "no-op-empty-selection", output.Status)
	assert.Equal(t, output.Stats.OriginalOperations, output.Stats.SlimmedOperations)
}

func TestSlimTool_UnknownOperations(t *testing.T) {
	specCache.reset()
	input := slimInput{
		Spec:       specInput{Content: testutil.PetstoreOAS2YAML},
		Operations: []string{"getPet", "deletePet"},
	}

	_, output, err := handleSlim(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, []string{"deletePet"}, output.UnknownOperations)
}

func TestSlimTool_WritesOutput(t *testing.T) {
	specCache.reset()
	out := filepath.Join(t.TempDir(), "slim.yaml")
	input := slimInput{
		Spec:       specInput{Content: testutil.PetstoreOAS3JSON},
		Operations: []string{"addPet"},
		Output:     out,
	}

	result, output, err := handleSlim(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, out, output.WrittenTo)
	assert.Empty(t, output.Document)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "operationId: addPet")
	doc, err := node.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"NewPet", "Pet"}, slimmer.ListSchemaIDs(doc))
}

func TestSlimTool_RefusesToOverwriteSource(t *testing.T) {
	specCache.reset()
	path := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreOAS2YAML)
	input := slimInput{
		Spec:       specInput{File: path},
		Operations: []string{"getPet"},
		Output:     path,
	}

	result, _, err := handleSlim(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
