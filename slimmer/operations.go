package slimmer

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mikejonesguy/SlimSwagger/internal/httputil"
	"github.com/mikejonesguy/SlimSwagger/node"
)

// OperationRef locates one operation in a document.
type OperationRef struct {
	// Path is the path template, e.g. "/pets/{petId}"
	Path string
	// Method is the lowercase path-item key, e.g. "get"
	Method string
	// ID is the operationId, or "" when the operation declares none
	ID string
	// Tags are the operation's declared tags
	Tags []string
	// Operation is the operation body
	Operation *node.Node
}

// OperationIndex maps operation identifiers to operations. It reflects the
// document at the time it was built; rebuild it after pruning.
type OperationIndex struct {
	ops        []OperationRef
	byID       map[string]int
	duplicates []string
}

// NewOperationIndex scans every method of every path-item of doc, in
// document order. A missing or malformed path table yields an empty index.
func NewOperationIndex(doc *node.Node) *OperationIndex {
	idx := &OperationIndex{byID: make(map[string]int)}
	for path, item := range doc.Lookup("paths").Fields() {
		for method, op := range item.Fields() {
			if !httputil.IsMethod(method) || !op.IsMapping() {
				continue
			}
			ref := OperationRef{
				Path:      path,
				Method:    method,
				ID:        op.GetString("operationId"),
				Tags:      op.GetStrings("tags"),
				Operation: op,
			}
			if ref.ID != "" {
				if _, exists := idx.byID[ref.ID]; !exists {
					idx.byID[ref.ID] = len(idx.ops)
				} else if !slices.Contains(idx.duplicates, ref.ID) {
					idx.duplicates = append(idx.duplicates, ref.ID)
				}
			}
			idx.ops = append(idx.ops, ref)
		}
	}
	return idx
}

// ListOperationIDs returns the identifier of every operation that declares
// one, sorted with a locale-aware collation. When qualifyByTag is set, an
// operation contributes one "tag.id" entry per declared tag instead, and
// none if it has no tags. Duplicates in the document appear as duplicates
// in the list.
func (x *OperationIndex) ListOperationIDs(qualifyByTag bool) []string {
	ids := make([]string, 0, len(x.ops))
	for _, op := range x.ops {
		if op.ID == "" {
			continue
		}
		if !qualifyByTag {
			ids = append(ids, op.ID)
			continue
		}
		for _, tag := range op.Tags {
			ids = append(ids, tag+"."+op.ID)
		}
	}
	SortIDs(ids)
	return ids
}

// FindOperationByID returns the first operation, in document order, whose
// identifier is id.
func (x *OperationIndex) FindOperationByID(id string) (OperationRef, bool) {
	i, ok := x.byID[id]
	if !ok {
		return OperationRef{}, false
	}
	return x.ops[i], true
}

// FindOperationsByID returns every operation whose identifier is id, in
// document order.
func (x *OperationIndex) FindOperationsByID(id string) []OperationRef {
	if _, ok := x.byID[id]; !ok {
		return nil
	}
	var out []OperationRef
	for _, op := range x.ops[x.byID[id]:] {
		if op.ID == id {
			out = append(out, op)
		}
	}
	return out
}

// Has reports whether some operation is identified by id.
func (x *OperationIndex) Has(id string) bool {
	_, ok := x.byID[id]
	return ok
}

// Operations returns every operation, including those without an
// identifier, in document order.
func (x *OperationIndex) Operations() []OperationRef {
	out := make([]OperationRef, len(x.ops))
	copy(out, x.ops)
	return out
}

// Duplicates returns identifiers declared by more than one operation, in the
// order their second occurrence was found.
func (x *OperationIndex) Duplicates() []string {
	out := make([]string, len(x.duplicates))
	copy(out, x.duplicates)
	return out
}

// ListOperationIDs is a convenience wrapper over a fresh OperationIndex.
func ListOperationIDs(doc *node.Node, qualifyByTag bool) []string {
	return NewOperationIndex(doc).ListOperationIDs(qualifyByTag)
}

// ListSchemaIDs returns the schema identifiers of doc in the same collation
// order as operation identifiers.
func ListSchemaIDs(doc *node.Node) []string {
	ids := NewRegistry(doc).IDs()
	if ids == nil {
		ids = []string{}
	}
	SortIDs(ids)
	return ids
}

// SortIDs sorts identifiers in place using English collation, falling back
// to byte order for strings that collate equal so the result is total.
func SortIDs(ids []string) {
	c := collate.New(language.English)
	slices.SortFunc(ids, func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	})
}
