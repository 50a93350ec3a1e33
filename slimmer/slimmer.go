package slimmer

import (
	"slices"

	"github.com/mikejonesguy/SlimSwagger/internal/httputil"
	"github.com/mikejonesguy/SlimSwagger/node"
	"github.com/mikejonesguy/SlimSwagger/parser"
)

// Status is the outcome of a slim run.
type Status int

const (
	// StatusApplied means the document was pruned
	StatusApplied Status = iota + 1
	// StatusNoOpEmptySelection means no operations were selected and the
	// document was left untouched
	StatusNoOpEmptySelection
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusNoOpEmptySelection:
		return "no-op-empty-selection"
	default:
		return "unknown"
	}
}

// SlimResult describes what a slim run kept and removed. Identifier lists
// are in collation order; RemovedPaths is in document order.
type SlimResult struct {
	// Document is the slimmed document (the same tree that was passed in)
	Document *node.Node
	// SourcePath is the source of the document, when known
	SourcePath string
	// SourceFormat is the format of the source, when known
	SourceFormat parser.SourceFormat
	// Status reports whether pruning happened
	Status Status
	// Stats holds before/after counts
	Stats Stats
	// RetainedOperations are the identifiers still present
	RetainedOperations []string
	// RemovedOperations are the identifiers whose operations were deleted
	RemovedOperations []string
	// RetainedSchemas are the schema identifiers still present
	RetainedSchemas []string
	// RemovedSchemas are the schema identifiers deleted
	RemovedSchemas []string
	// RemovedPaths are the path templates deleted because no method remained
	RemovedPaths []string
	// UnknownOperations are selected identifiers that no operation declares
	UnknownOperations []string
	// DuplicateOperations are identifiers declared by more than one operation
	DuplicateOperations []string
}

// Slimmer reduces documents to selected operations and their schemas.
type Slimmer struct {
	// Logger is the structured logger for diagnostics
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Slimmer instance with default settings
func New() *Slimmer {
	return &Slimmer{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (s *Slimmer) log() parser.Logger {
	return parser.OrNop(s.Logger)
}

// Filter prunes doc in place so that only the selected operations and the
// schemas they transitively reference remain.
//
// With invert unset, operations is an allow-list and models names extra
// schemas to keep. With invert set, operations is a deny-list, every other
// identified operation is kept, and models names schemas to drop even when
// reachable.
//
// Operations without an operationId are never removed and their references
// do not contribute to the schema closure; each one that carries a
// reference is logged at Warn. When several operations share a kept
// identifier, all of them are kept and all of them supply references.
//
// An empty operations list leaves doc untouched and returns
// StatusNoOpEmptySelection. The caller gives up doc for the duration of the
// call; clone first to keep the original.
func (s *Slimmer) Filter(doc *node.Node, operations, models []string, invert bool) *SlimResult {
	result := &SlimResult{Document: doc}

	if len(operations) == 0 {
		s.log().Warn("empty operations list; document left unchanged")
		result.Status = StatusNoOpEmptySelection
		result.Stats.Capture(doc, SnapshotBefore)
		result.Stats.SlimmedOperations = result.Stats.OriginalOperations
		result.Stats.SlimmedSchemas = result.Stats.OriginalSchemas
		return result
	}

	// 1. before
	result.Stats.Capture(doc, SnapshotBefore)
	index := NewOperationIndex(doc)
	result.DuplicateOperations = index.Duplicates()
	for _, id := range result.DuplicateOperations {
		s.log().Warn("duplicate operationId; every occurrence is treated alike", "operationId", id)
	}
	for _, op := range index.Operations() {
		if op.ID == "" && hasReference(op.Operation) {
			s.log().Warn("operation without operationId kept; schemas it references may be removed",
				"path", op.Path, "method", op.Method)
		}
	}

	// 2. effective allow-list
	allowed := effectiveAllowList(index, operations, invert)
	if !invert {
		for _, id := range operations {
			if !index.Has(id) {
				result.UnknownOperations = append(result.UnknownOperations, id)
				s.log().Warn("selected operation not found", "operationId", id)
			}
		}
	}
	allowSet := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		allowSet[id] = true
	}

	// 3. remove operations, then empty path-items
	result.RemovedOperations, result.RemovedPaths = removeOperations(doc, allowSet)

	// 4. closure over one shared visited set
	registry := NewRegistry(doc)
	resolver := NewResolver(doc, registry, s.log())
	visited := NewRefSet()
	for _, id := range allowed {
		for _, op := range index.FindOperationsByID(id) {
			resolver.ResolveReferences(op.Operation, visited)
		}
	}

	// 5. tokens to identifiers
	keep := make(map[string]bool, visited.Len())
	for _, token := range visited.Tokens() {
		keep[SchemaID(token)] = true
	}

	// 6. supplemental models
	for _, id := range models {
		if invert {
			delete(keep, id)
		} else {
			keep[id] = true
		}
	}

	// 7. remove schemas
	for _, id := range registry.IDs() {
		if keep[id] {
			continue
		}
		registry.Remove(id)
		result.RemovedSchemas = append(result.RemovedSchemas, id)
	}

	// 8. after
	result.Stats.Capture(doc, SnapshotAfter)
	result.Status = StatusApplied
	result.RetainedOperations = ListOperationIDs(doc, false)
	result.RetainedSchemas = ListSchemaIDs(doc)
	SortIDs(result.RemovedOperations)
	SortIDs(result.RemovedSchemas)
	SortIDs(result.UnknownOperations)

	s.log().Info("slimmed document",
		"originalOperations", result.Stats.OriginalOperations,
		"originalSchemas", result.Stats.OriginalSchemas,
		"slimmedOperations", result.Stats.SlimmedOperations,
		"slimmedSchemas", result.Stats.SlimmedSchemas)

	return result
}

// effectiveAllowList returns the operations to keep, de-duplicated in
// selection order (or, when inverting, in collation order).
func effectiveAllowList(index *OperationIndex, operations []string, invert bool) []string {
	var candidates []string
	exclude := map[string]bool{}
	if invert {
		candidates = index.ListOperationIDs(false)
		for _, id := range operations {
			exclude[id] = true
		}
	} else {
		candidates = operations
	}

	seen := make(map[string]bool, len(candidates))
	allowed := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if seen[id] || exclude[id] {
			continue
		}
		seen[id] = true
		allowed = append(allowed, id)
	}
	return allowed
}

// removeOperations deletes identified operations that are not allowed, then
// deletes path-items left without any method.
func removeOperations(doc *node.Node, allowed map[string]bool) (removedOps, removedPaths []string) {
	paths := doc.Lookup("paths")
	for path, item := range paths.Fields() {
		for method, op := range item.Fields() {
			if !httputil.IsMethod(method) {
				continue
			}
			id := op.GetString("operationId")
			if id == "" || allowed[id] {
				continue
			}
			item.Delete(method)
			if !slices.Contains(removedOps, id) {
				removedOps = append(removedOps, id)
			}
		}
		if isPathItemEmpty(item) {
			paths.Delete(path)
			removedPaths = append(removedPaths, path)
		}
	}
	return removedOps, removedPaths
}

// hasReference reports whether any mapping under op carries a $ref.
func hasReference(op *node.Node) bool {
	found := false
	node.Walk(op, func(n *node.Node) bool {
		if n.IsMapping() && n.Has("$ref") {
			found = true
		}
		return !found
	})
	return found
}

// isPathItemEmpty returns true if the path item has no operations defined.
// A path with only parameters but no HTTP methods is considered empty.
// A path with a $ref is NOT considered empty.
func isPathItemEmpty(item *node.Node) bool {
	if !item.IsMapping() {
		return true
	}
	if item.Has("$ref") {
		return false
	}
	for key := range item.Fields() {
		if httputil.IsMethod(key) {
			return false
		}
	}
	return true
}
