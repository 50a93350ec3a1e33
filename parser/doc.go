// Package parser loads OpenAPI and Swagger documents into a [node.Node] tree.
//
// Documents may be JSON or YAML and may come from a local file, an http(s)
// URL, an io.Reader or a byte slice. The parser does not validate the document
// against the OpenAPI schema and does not resolve external references; it
// checks only that the root is a mapping and records the declared version.
// A missing version is reported as a warning.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("swagger.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Version, result.Document.Lookup("info").GetString("title"))
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	p.MaxFileSize = 16 << 20
//	result1, _ := p.Parse("api1.yaml")
//	result2, _ := p.Parse("https://example.com/api2.json")
//
// # Logging
//
// The [Logger] interface is shared with the slimmer package. Wrap a
// *slog.Logger with [NewSlogAdapter]; the default is [NopLogger].
package parser
