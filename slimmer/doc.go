// Package slimmer reduces an OpenAPI or Swagger document to a selection of
// operations plus every schema those operations transitively reference.
//
// The package is built from five parts:
//
//   - [Registry] gives one view over "definitions" (OAS 2.0) and
//     "components.schemas" (OAS 3.x).
//   - [Resolver] follows "$ref" tokens depth-first through operations and
//     schemas, recording each resolved token once so cyclic schemas terminate.
//   - [OperationIndex] lists operation identifiers, optionally qualified by
//     tag ("pets.getPet"), and finds operations by identifier.
//   - [Slimmer.Filter] removes unselected operations, empty path-items and
//     unreachable schemas.
//   - [Stats] records counts before and after.
//
// # Quick Start
//
//	parsed, err := parser.ParseWithOptions(parser.WithFilePath("swagger.json"))
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
//	if result.Status == slimmer.StatusNoOpEmptySelection {
//		log.Print("nothing selected")
//	}
//	out, _ := result.Document.MarshalJSONIndent("", "  ")
//
// # Inverted selection
//
// With [WithInvert], the operations list names operations to remove and the
// models list names schemas to remove even when they are still referenced:
//
//	result, _ := slimmer.SlimWithOptions(
//		slimmer.WithParsed(parsed),
//		slimmer.WithOperations("deletePet"),
//		slimmer.WithModels("InternalAudit"),
//		slimmer.WithInvert(true),
//	)
//
// # Mutation
//
// Slimming mutates the document in place. Keep a copy with
// [parser.ParseResult.Copy] or [node.Node.Clone] when the original is needed.
package slimmer
