package mcpserver

import (
	"context"
	"fmt"

	"github.com/mikejonesguy/SlimSwagger/internal/cliutil"
	"github.com/mikejonesguy/SlimSwagger/parser"
	"github.com/mikejonesguy/SlimSwagger/selection"
	"github.com/mikejonesguy/SlimSwagger/slimmer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type slimInput struct {
	Spec       specInput `json:"spec"                 jsonschema:"The document to slim"`
	Operations []string  `json:"operations,omitempty" jsonschema:"operationIds to keep (or to remove when invert is true)"`
	Models     []string  `json:"models,omitempty"     jsonschema:"Extra schema ids to keep (or to drop when invert is true)"`
	Invert     bool      `json:"invert,omitempty"     jsonschema:"Treat operations as a deny-list and models as schemas to drop"`
	Output     string    `json:"output,omitempty"     jsonschema:"File path to write the slimmed document. If omitted the document is returned inline."`
}

type slimStats struct {
	OriginalOperations int `json:"original_operations"`
	OriginalSchemas    int `json:"original_schemas"`
	SlimmedOperations  int `json:"slimmed_operations"`
	SlimmedSchemas     int `json:"slimmed_schemas"`
}

type slimOutput struct {
	Status              string    `json:"status"`
	Stats               slimStats `json:"stats"`
	RetainedOperations  []string  `json:"retained_operations,omitempty"`
	RemovedOperations   []string  `json:"removed_operations,omitempty"`
	RetainedSchemas     []string  `json:"retained_schemas,omitempty"`
	RemovedSchemas      []string  `json:"removed_schemas,omitempty"`
	RemovedPaths        []string  `json:"removed_paths,omitempty"`
	UnknownOperations   []string  `json:"unknown_operations,omitempty"`
	DuplicateOperations []string  `json:"duplicate_operations,omitempty"`
	WrittenTo           string    `json:"written_to,omitempty"`
	Document            string    `json:"document,omitempty"`
}

func handleSlim(ctx context.Context, _ *mcp.CallToolRequest, input slimInput) (*mcp.CallToolResult, slimOutput, error) {
	parsed, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), slimOutput{}, nil
	}

	if input.Output != "" {
		if err := cliutil.ValidateOutputPath(input.Output, input.Spec.File); err != nil {
			return errResult(err), slimOutput{}, nil
		}
	}

	// Cached results are shared between calls.
	working := parsed.Copy()
	result, err := slimmer.SlimWithOptions(
		slimmer.WithParsed(working),
		slimmer.WithOperations(selection.Normalize(input.Operations)...),
		slimmer.WithModels(selection.Normalize(input.Models)...),
		slimmer.WithInvert(input.Invert),
		slimmer.WithLogger(serverLogger()),
	)
	if err != nil {
		return errResult(err), slimOutput{}, nil
	}

	output := slimOutput{
		Status: result.Status.String(),
		Stats: slimStats{
			OriginalOperations: result.Stats.OriginalOperations,
			OriginalSchemas:    result.Stats.OriginalSchemas,
			SlimmedOperations:  result.Stats.SlimmedOperations,
			SlimmedSchemas:     result.Stats.SlimmedSchemas,
		},
		RetainedOperations:  result.RetainedOperations,
		RemovedOperations:   result.RemovedOperations,
		RetainedSchemas:     result.RetainedSchemas,
		RemovedSchemas:      result.RemovedSchemas,
		RemovedPaths:        result.RemovedPaths,
		UnknownOperations:   result.UnknownOperations,
		DuplicateOperations: result.DuplicateOperations,
	}

	asYAML := result.SourceFormat == parser.SourceFormatYAML
	if input.Output != "" {
		asYAML = cliutil.IsYAMLPath(input.Output)
	}
	var data []byte
	if asYAML {
		data, err = result.Document.MarshalYAML()
	} else {
		data, err = result.Document.MarshalJSONIndent("", "  ")
	}
	if err != nil {
		return errResult(fmt.Errorf("marshaling slimmed document: %w", err)), slimOutput{}, nil
	}

	if input.Output != "" {
		if err := cliutil.WriteOutput(input.Output, data); err != nil {
			return errResult(err), slimOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}
