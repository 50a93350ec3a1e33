package mcpserver

import (
	"context"

	"github.com/mikejonesguy/SlimSwagger/slimmer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listOperationsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document to inspect"`
	Tags   bool      `json:"tags,omitempty"   jsonschema:"Qualify ids with their tags (tag.operationId, one entry per tag)"`
	Detail bool      `json:"detail,omitempty" jsonschema:"Also return method, path and tags for each operation"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return"`
}

type operationSummary struct {
	OperationID string   `json:"operation_id,omitempty"`
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	Tags        []string `json:"tags,omitempty"`
}

type listOperationsOutput struct {
	Version      string             `json:"version,omitempty"`
	Total        int                `json:"total"`
	Returned     int                `json:"returned"`
	OperationIDs []string           `json:"operation_ids"`
	Operations   []operationSummary `json:"operations,omitempty"`
	Duplicates   []string           `json:"duplicates,omitempty"`
}

func handleListOperations(ctx context.Context, _ *mcp.CallToolRequest, input listOperationsInput) (*mcp.CallToolResult, listOperationsOutput, error) {
	parsed, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}

	index := slimmer.NewOperationIndex(parsed.Document)
	ids := index.ListOperationIDs(input.Tags)

	output := listOperationsOutput{
		Version:    parsed.Version,
		Total:      len(ids),
		Duplicates: index.Duplicates(),
	}
	output.OperationIDs = paginate(ids, input.Offset, input.Limit)
	if output.OperationIDs == nil {
		output.OperationIDs = []string{}
	}
	output.Returned = len(output.OperationIDs)

	if input.Detail {
		for _, op := range paginate(index.Operations(), input.Offset, input.Limit) {
			output.Operations = append(output.Operations, operationSummary{
				OperationID: op.ID,
				Method:      op.Method,
				Path:        op.Path,
				Tags:        op.Tags,
			})
		}
	}

	return nil, output, nil
}

type listSchemasInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document to inspect"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return"`
}

type listSchemasOutput struct {
	Container string   `json:"container,omitempty"`
	Total     int      `json:"total"`
	Returned  int      `json:"returned"`
	Schemas   []string `json:"schemas"`
}

func handleListSchemas(ctx context.Context, _ *mcp.CallToolRequest, input listSchemasInput) (*mcp.CallToolResult, listSchemasOutput, error) {
	parsed, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), listSchemasOutput{}, nil
	}

	ids := slimmer.ListSchemaIDs(parsed.Document)
	output := listSchemasOutput{
		Container: slimmer.NewRegistry(parsed.Document).Pointer(),
		Total:     len(ids),
	}
	output.Schemas = paginate(ids, input.Offset, input.Limit)
	if output.Schemas == nil {
		output.Schemas = []string{}
	}
	output.Returned = len(output.Schemas)
	return nil, output, nil
}
