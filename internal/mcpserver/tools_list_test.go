package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikejonesguy/SlimSwagger/internal/testutil"
)

func TestListOperationsTool(t *testing.T) {
	specCache.reset()
	input := listOperationsInput{Spec: specInput{Content: testutil.PetstoreOAS3JSON}}

	result, output, err := handleListOperations(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "3.0.3", output.Version)
	assert.Equal(t, 3, output.Total)
	assert.Equal(t, []string{"addPet", "getPet", "listPets"}, output.OperationIDs)
	assert.Empty(t, output.Operations)
}

func TestListOperationsTool_TagsAndDetail(t *testing.T) {
	specCache.reset()
	input := listOperationsInput{
		Spec:   specInput{Content: testutil.PetstoreOAS3JSON},
		Tags:   true,
		Detail: true,
	}

	_, output, err := handleListOperations(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin.addPet", "pets.addPet", "pets.getPet", "pets.listPets"}, output.OperationIDs)
	require.Len(t, output.Operations, 3)
	assert.Equal(t, operationSummary{OperationID: "listPets", Method: "get", Path: "/pets", Tags: []string{"pets"}}, output.Operations[0])
}

func TestListOperationsTool_Pagination(t *testing.T) {
	specCache.reset()
	input := listOperationsInput{Spec: specInput{Content: testutil.PetstoreOAS3JSON}, Offset: 1, Limit: 1}

	_, output, err := handleListOperations(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, 3, output.Total)
	assert.Equal(t, 1, output.Returned)
	assert.Equal(t, []string{"getPet"}, output.OperationIDs)
}

func TestListOperationsTool_InvalidInput(t *testing.T) {
	result, _, err := handleListOperations(context.Background(), &mcp.CallToolRequest{}, listOperationsInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestListSchemasTool(t *testing.T) {
	specCache.reset()
	input := listSchemasInput{Spec: specInput{Content: testutil.PetstoreOAS2YAML}}

	result, output, err := handleListSchemas(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "#/definitions", output.Container)
	assert.Equal(t, 3, output.Total)
	assert.Equal(t, []string{"Error", "Pet", "Unused"}, output.Schemas)
}

func TestListSchemasTool_NoContainer(t *testing.T) {
	specCache.reset()
	input := listSchemasInput{Spec: specInput{Content: "swagger: \"2.0\"\npaths: {}\n"}}

	_, output, err := handleListSchemas(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Empty(t, output.Container)
	assert.Equal(t, 0, output.Total)
	assert.Equal(t, []string{}, output.Schemas)
}
