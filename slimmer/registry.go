package slimmer

import (
	"net/url"
	"strings"

	"github.com/mikejonesguy/SlimSwagger/node"
)

// Schema container pointers for the two document shapes.
const (
	DefinitionsPointer = "#/definitions"        // OAS 2.0
	ComponentsPointer  = "#/components/schemas" // OAS 3.x
)

// Registry is a uniform view over a document's schema container: top-level
// "definitions" (OAS 2.0) or "components.schemas" (OAS 3.x). The container is
// chosen once, when the Registry is built. A document with neither is an
// empty registry.
type Registry struct {
	schemas *node.Node
	pointer string
}

// NewRegistry locates the schema container of doc. "definitions" wins when
// both are present.
func NewRegistry(doc *node.Node) *Registry {
	if defs := doc.Lookup("definitions"); defs.IsMapping() {
		return &Registry{schemas: defs, pointer: DefinitionsPointer}
	}
	if schemas := doc.Lookup("components", "schemas"); schemas.IsMapping() {
		return &Registry{schemas: schemas, pointer: ComponentsPointer}
	}
	return &Registry{}
}

// Pointer returns the JSON pointer of the container, or "" for an empty registry.
func (r *Registry) Pointer() string {
	return r.pointer
}

// Get returns the schema body stored under id.
func (r *Registry) Get(id string) (*node.Node, bool) {
	return r.schemas.Get(id)
}

// Has reports whether id is a schema identifier.
func (r *Registry) Has(id string) bool {
	return r.schemas.Has(id)
}

// Resolve maps a reference token to its schema identifier and body.
func (r *Registry) Resolve(token string) (string, *node.Node, bool) {
	id := SchemaID(token)
	if id == "" {
		return "", nil, false
	}
	body, ok := r.Get(id)
	return id, body, ok
}

// IDs returns the schema identifiers in document order.
func (r *Registry) IDs() []string {
	return r.schemas.Keys()
}

// Len returns the number of schemas.
func (r *Registry) Len() int {
	return r.schemas.Len()
}

// Remove deletes the schema stored under id and reports whether it existed.
func (r *Registry) Remove(id string) bool {
	return r.schemas.Delete(id)
}

// SchemaID reduces a reference token to a schema identifier: the last
// segment of a local pointer ("#/definitions/Pet" is "Pet"), unescaped per
// RFC 6901 and percent-decoding. A token that is not a local pointer is
// already an identifier and is returned unchanged.
//
// Only the last segment counts, so "#/components/responses/Pet" names the
// schema Pet whenever that schema exists, and the response itself is not
// walked.
func SchemaID(token string) string {
	if !strings.HasPrefix(token, "#/") {
		return token
	}
	segment := token[strings.LastIndex(token, "/")+1:]
	if decoded, err := url.PathUnescape(segment); err == nil {
		segment = decoded
	}
	return node.UnescapePointerToken(segment)
}
