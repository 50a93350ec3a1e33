// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes slimswagger capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"regexp"
	"sync/atomic"

	slimswagger "github.com/mikejonesguy/SlimSwagger"
	"github.com/mikejonesguy/SlimSwagger/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `slimswagger MCP server: lists operations and schemas of OpenAPI/Swagger documents and slims them down to selected operations plus the schemas those operations reference.

Typical flow: call list_operations to discover operationIds, then call slim with the ids to keep (or invert=true with the ids to drop). Use output to write the result to a file instead of returning it inline.

Configuration: defaults come from SLIMSWAGGER_* environment variables (optionally loaded from a .env file).
- SLIMSWAGGER_CACHE_ENABLED (default: true) - cache parsed documents per session
- SLIMSWAGGER_CACHE_FILE_TTL (default: 15m), SLIMSWAGGER_CACHE_URL_TTL (default: 5m), SLIMSWAGGER_CACHE_CONTENT_TTL (default: 15m)
- SLIMSWAGGER_LIST_LIMIT (default: 500) - default page size for list tools
- SLIMSWAGGER_MAX_INLINE_SIZE (default: 10MiB) - cap on inline content
- SLIMSWAGGER_ALLOW_PRIVATE_IPS (default: false) - allow URL inputs on private networks`

// Options configures Run.
type Options struct {
	// Logger receives server diagnostics. Never stdout: it carries the protocol.
	Logger *slog.Logger
}

var activeLogger atomic.Pointer[slog.Logger]

// serverLogger returns the library logger for tool handlers.
func serverLogger() parser.Logger {
	if l := activeLogger.Load(); l != nil {
		return parser.NewSlogAdapter(l)
	}
	return parser.NopLogger{}
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. Configuration is read from the environment at
// this point; call LoadEnvFile first to apply a .env file.
func Run(ctx context.Context, opts Options) error {
	cfg = loadConfig()
	specCache = newSpecCache(cfg)
	if opts.Logger != nil {
		activeLogger.Store(opts.Logger)
	}

	server := newServer()
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "slimswagger", Version: slimswagger.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_operations",
		Description: "List the operationIds declared by an OpenAPI/Swagger document, sorted alphabetically. Set tags=true to get tag-qualified ids (tag.operationId, one per tag). Set detail=true to also get method, path and tags per operation in document order. Use offset/limit to paginate.",
	}, handleListOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_schemas",
		Description: "List the schema ids of an OpenAPI/Swagger document (definitions for Swagger 2.0, components.schemas for OpenAPI 3.x), sorted alphabetically. Use offset/limit to paginate.",
	}, handleListSchemas)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "slim",
		Description: "Reduce an OpenAPI/Swagger document to the given operationIds plus every schema they transitively reference. models adds schemas to keep. With invert=true, operations lists ids to remove and models lists schemas to drop. Returns before/after counts and the retained and removed ids. The slimmed document is written to output when given (.yaml/.yml as YAML, otherwise JSON) or returned inline.",
	}, handleSlim)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
