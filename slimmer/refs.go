package slimmer

import (
	"strings"

	"github.com/mikejonesguy/SlimSwagger/node"
	"github.com/mikejonesguy/SlimSwagger/parser"
)

// RefSet is an insertion-ordered set of reference tokens.
type RefSet struct {
	order []string
	seen  map[string]bool

	// followed tracks local pointers outside the schema container
	// (shared parameters, responses, request bodies) already walked into
	// this set. They are not tokens.
	followed map[string]bool
}

// NewRefSet returns an empty RefSet.
func NewRefSet() *RefSet {
	return &RefSet{seen: make(map[string]bool), followed: make(map[string]bool)}
}

// Add records token and reports whether it was new.
func (s *RefSet) Add(token string) bool {
	if s.seen[token] {
		return false
	}
	s.seen[token] = true
	s.order = append(s.order, token)
	return true
}

// Has reports whether token has been recorded.
func (s *RefSet) Has(token string) bool {
	return s.seen[token]
}

// Len returns the number of tokens.
func (s *RefSet) Len() int {
	return len(s.order)
}

// Tokens returns the recorded tokens in discovery order.
func (s *RefSet) Tokens() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Resolver computes the transitive closure of schema references reachable
// from a sub-tree of a document.
type Resolver struct {
	doc      *node.Node
	registry *Registry
	logger   parser.Logger
}

// NewResolver returns a Resolver over doc. A nil logger discards output.
func NewResolver(doc *node.Node, registry *Registry, logger parser.Logger) *Resolver {
	if registry == nil {
		registry = NewRegistry(doc)
	}
	return &Resolver{
		doc:      doc,
		registry: registry,
		logger:   parser.OrNop(logger),
	}
}

// ResolveReferences walks item depth-first and records in visited every
// reference token that resolves to a schema, following each resolved schema's
// own references. Tokens already in visited are not followed again, which
// makes cyclic schema graphs terminate. Dangling tokens are dropped.
//
// Local pointers that do not name a schema but do resolve inside the
// document (for example "#/parameters/limit" or
// "#/components/responses/NotFound") are walked for the schemas they
// reference; they are never recorded as tokens, and each is walked at most
// once per visited set.
//
// visited is returned; a nil visited starts a new set. A Resolver keeps no
// state between calls.
func (r *Resolver) ResolveReferences(item *node.Node, visited *RefSet) *RefSet {
	if visited == nil {
		visited = NewRefSet()
	}
	node.Walk(item, func(n *node.Node) bool {
		if !n.IsMapping() {
			return true
		}
		token := n.GetString("$ref")
		if token == "" || visited.Has(token) || visited.followed[token] {
			return true
		}
		if _, body, ok := r.registry.Resolve(token); ok {
			visited.Add(token)
			r.ResolveReferences(body, visited)
			return true
		}
		if target, ok := r.localTarget(token); ok {
			visited.followed[token] = true
			r.ResolveReferences(target, visited)
			return true
		}
		r.logger.Debug("dropping dangling reference", "ref", token)
		return true
	})
	return visited
}

// localTarget resolves a local pointer that lies outside the schema container.
func (r *Resolver) localTarget(token string) (*node.Node, bool) {
	if !strings.HasPrefix(token, "#/") {
		return nil, false
	}
	if p := r.registry.Pointer(); p != "" && strings.HasPrefix(token, p+"/") {
		return nil, false
	}
	return r.doc.ResolvePointer(token)
}

// ResolveReferences is a convenience wrapper returning the closure of item
// within doc as a fresh token set.
func ResolveReferences(doc, item *node.Node) *RefSet {
	return NewResolver(doc, nil, nil).ResolveReferences(item, nil)
}
