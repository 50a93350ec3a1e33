// Package slimswagger reduces a large OpenAPI (Swagger) document to the subset
// of operations an application actually needs, together with every schema
// definition those operations transitively depend on.
//
// # Overview
//
// The module is organized into small packages, each owning one concern:
//
//   - node: an order-preserving document tree (mappings, sequences, scalars)
//     with JSON and YAML encoders
//   - parser: loads a document from a file path, URL, reader, or bytes
//   - selection: reads newline-delimited operation and model lists
//   - slimmer: the reference-closure and selection engine
//   - oaserrors: structured error types
//
// Both OAS 2.0 (schemas under "definitions") and OAS 3.x (schemas under
// "components.schemas") documents are supported.
//
// # Quick Start
//
// Keep two operations and everything they reference:
//
//	import (
//		"github.com/mikejonesguy/SlimSwagger/parser"
//		"github.com/mikejonesguy/SlimSwagger/slimmer"
//	)
//
//	parsed, err := parser.ParseWithOptions(parser.WithFilePath("petstore.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := slimmer.SlimWithOptions(
//		slimmer.WithParsed(parsed),
//		slimmer.WithOperations("getPetById", "addPet"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := result.Document.MarshalJSONIndent("", "  ")
//
// Drop operations instead of keeping them by adding slimmer.WithInvert(true);
// in that mode the models list passed to slimmer.WithModels names schemas to
// remove rather than schemas to add.
//
// # Command Line
//
// The slimswagger binary wraps the same engine:
//
//	slimswagger -s https://petstore.swagger.io/v2/swagger.json -w ops.txt -o slim.json
//	slimswagger -s ./swagger.json --list
//	slimswagger list -f table openapi.yaml
//
// The mcp subcommand serves the list and slim operations as Model Context
// Protocol tools over stdio. See cmd/slimswagger for the full flag reference.
package slimswagger
