package slimmer

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikejonesguy/SlimSwagger/internal/testutil"
	"github.com/mikejonesguy/SlimSwagger/node"
	"github.com/mikejonesguy/SlimSwagger/parser"
)

func petstore(t *testing.T) *node.Node {
	t.Helper()
	return testutil.MustDecode(t, testutil.PetstoreOAS2YAML)
}

func TestFilter_AllowList(t *testing.T) {
	doc := petstore(t)

	result := New().Filter(doc, []string{"getPet"}, nil, false)

	assert.Equal(t, StatusApplied, result.Status)
	assert.Same(t, doc, result.Document)
	assert.Equal(t, []string{"/pets/{petId}"}, doc.Lookup("paths").Keys())
	assert.Equal(t, []string{"parameters", "get"}, doc.Lookup("paths", "/pets/{petId}").Keys())
	assert.Equal(t, []string{"Pet"}, doc.Lookup("definitions").Keys())

	assert.Equal(t, []string{"getPet"}, result.RetainedOperations)
	assert.Equal(t, []string{"listPets"}, result.RemovedOperations)
	assert.Equal(t, []string{"Pet"}, result.RetainedSchemas)
	assert.Equal(t, []string{"Error", "Unused"}, result.RemovedSchemas)
	assert.Equal(t, []string{"/pets"}, result.RemovedPaths)
	assert.Empty(t, result.UnknownOperations)
	assert.Equal(t, Stats{OriginalOperations: 2, OriginalSchemas: 3, SlimmedOperations: 1, SlimmedSchemas: 1}, result.Stats)
}

func TestFilter_Invert(t *testing.T) {
	doc := petstore(t)

	result := New().Filter(doc, []string{"getPet"}, nil, true)

	assert.Equal(t, StatusApplied, result.Status)
	assert.Equal(t, []string{"listPets"}, result.RetainedOperations)
	assert.Equal(t, []string{"/pets"}, doc.Lookup("paths").Keys(), "a path-item left with only parameters is removed")
	assert.Equal(t, []string{"Error", "Pet"}, result.RetainedSchemas)
	assert.Equal(t, []string{"Pet", "Error"}, doc.Lookup("definitions").Keys(), "surviving schemas keep document order")
	assert.Equal(t, []string{"Unused"}, result.RemovedSchemas)
}

func TestFilter_SupplementalModels(t *testing.T) {
	t.Run("allow-list adds unreachable schemas", func(t *testing.T) {
		doc := petstore(t)
		result := New().Filter(doc, []string{"getPet"}, []string{"Error"}, false)
		assert.Equal(t, []string{"Error", "Pet"}, result.RetainedSchemas)
	})

	t.Run("names with no schema are harmless", func(t *testing.T) {
		doc := petstore(t)
		result := New().Filter(doc, []string{"getPet"}, []string{"Missing"}, false)
		assert.Equal(t, []string{"Pet"}, result.RetainedSchemas)
	})

	t.Run("deny-list removes reachable schemas", func(t *testing.T) {
		doc := petstore(t)
		result := New().Filter(doc, []string{"getPet"}, []string{"Error"}, true)
		assert.Equal(t, []string{"listPets"}, result.RetainedOperations)
		assert.Equal(t, []string{"Pet"}, result.RetainedSchemas)
	})
}

func TestFilter_Duality(t *testing.T) {
	all := []string{"addPet", "getPet", "listPets"}
	selections := [][]string{
		{"getPet"},
		{"addPet", "listPets"},
		{"listPets", "nope"},
		{"addPet", "getPet", "listPets"},
		{"nope"},
	}

	for _, sel := range selections {
		inDoc := map[string]bool{}
		for _, id := range sel {
			inDoc[id] = true
		}
		var kept, complement []string
		for _, id := range all {
			if inDoc[id] {
				kept = append(kept, id)
			} else {
				complement = append(complement, id)
			}
		}

		allow := New().Filter(testutil.MustDecode(t, testutil.PetstoreOAS3JSON), sel, nil, false)
		assert.ElementsMatch(t, kept, allow.RetainedOperations, "allow %v", sel)

		deny := New().Filter(testutil.MustDecode(t, testutil.PetstoreOAS3JSON), sel, nil, true)
		assert.ElementsMatch(t, complement, deny.RetainedOperations, "deny %v", sel)
	}
}

func TestFilter_OAS3Closure(t *testing.T) {
	doc := testutil.MustDecode(t, testutil.PetstoreOAS3JSON)

	result := New().Filter(doc, []string{"addPet"}, nil, false)

	assert.Equal(t, []string{"/pets"}, doc.Lookup("paths").Keys())
	assert.Equal(t, []string{"post"}, doc.Lookup("paths", "/pets").Keys())
	assert.Equal(t, []string{"Pet", "NewPet"}, doc.Lookup("components", "schemas").Keys())
	assert.Equal(t, []string{"Error", "Unused"}, result.RemovedSchemas)
	assert.Equal(t, []string{"getPet", "listPets"}, result.RemovedOperations)
	assert.Equal(t, []string{"/pets/{petId}"}, result.RemovedPaths)
}

func TestFilter_EmptySelection(t *testing.T) {
	var buf bytes.Buffer
	s := &Slimmer{Logger: parser.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))}

	for _, invert := range []bool{false, true} {
		doc := petstore(t)
		before, err := doc.MarshalJSON()
		require.NoError(t, err)

		result := s.Filter(doc, nil, []string{"Pet"}, invert)

		assert.Equal(t, StatusNoOpEmptySelection, result.Status)
		after, err := doc.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after), "document must be untouched")
		assert.Equal(t, Stats{OriginalOperations: 2, OriginalSchemas: 3, SlimmedOperations: 2, SlimmedSchemas: 3}, result.Stats)
	}
	assert.Contains(t, buf.String(), "empty operations list")
}

func TestFilter_OperationsWithoutID(t *testing.T) {
	src := `
swagger: "2.0"
paths:
  /pets/{petId}:
    get:
      operationId: getPet
      responses:
        "200": {schema: {$ref: "#/definitions/Pet"}}
  /legacy:
    get:
      summary: no operationId
      responses:
        "200": {schema: {$ref: "#/definitions/Legacy"}}
definitions:
  Pet: {type: object}
  Legacy: {type: object}
`
	for _, tt := range []struct {
		name   string
		sel    []string
		invert bool
	}{
		{"allow-list", []string{"getPet"}, false},
		{"deny-list", []string{"getPet"}, true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := &Slimmer{Logger: parser.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))}
			doc := testutil.MustDecode(t, src)
			s.Filter(doc, tt.sel, nil, tt.invert)

			// Never removed, but its references are not part of the closure.
			assert.True(t, doc.Lookup("paths", "/legacy").Has("get"))
			assert.False(t, doc.Lookup("definitions").Has("Legacy"))
			assert.Contains(t, buf.String(), "operation without operationId kept")
			assert.Contains(t, buf.String(), "path=/legacy")
		})
	}
}

func TestFilter_DuplicateIDs(t *testing.T) {
	var buf bytes.Buffer
	s := &Slimmer{Logger: parser.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))}
	doc := testutil.MustDecode(t, `
paths:
  /first:
    get:
      operationId: dup
      responses: {"200": {schema: {$ref: "#/definitions/A"}}}
  /second:
    get:
      operationId: dup
      responses: {"200": {schema: {$ref: "#/definitions/B"}}}
definitions:
  A: {type: object}
  B: {type: object}
`)

	result := s.Filter(doc, []string{"dup"}, nil, false)

	assert.Equal(t, []string{"/first", "/second"}, doc.Lookup("paths").Keys(), "every operation with a selected id is kept")
	assert.Equal(t, []string{"A", "B"}, result.RetainedSchemas, "every occurrence supplies references")
	assert.Equal(t, []string{"dup"}, result.DuplicateOperations)
	assert.Contains(t, buf.String(), "duplicate operationId")
	assert.NotContains(t, buf.String(), "operation without operationId")
}

func TestFilter_UnknownOperations(t *testing.T) {
	doc := petstore(t)
	result := New().Filter(doc, []string{"zeta", "getPet", "alpha", "getPet"}, nil, false)

	assert.Equal(t, []string{"alpha", "zeta"}, result.UnknownOperations)
	assert.Equal(t, []string{"getPet"}, result.RetainedOperations)
}

func TestFilter_PathItemEmptiness(t *testing.T) {
	doc := testutil.MustDecode(t, `
paths:
  /kept:
    get: {operationId: keep}
    delete: {operationId: drop}
  /extension-only:
    x-note: hello
    get: {operationId: drop2}
  /shared:
    $ref: "#/x-paths/shared"
  /already-empty: {}
  /untouched:
    put: {summary: no id}
`)

	result := New().Filter(doc, []string{"keep"}, nil, false)

	assert.Equal(t, []string{"/kept", "/shared", "/untouched"}, doc.Lookup("paths").Keys())
	assert.Equal(t, []string{"get"}, doc.Lookup("paths", "/kept").Keys())
	assert.Equal(t, []string{"/extension-only", "/already-empty"}, result.RemovedPaths)
}

func TestFilter_MalformedDocuments(t *testing.T) {
	docs := map[string]string{
		"no paths or schemas": `{"swagger": "2.0"}`,
		"paths is a sequence": `{"paths": [], "definitions": {"A": {}}}`,
		"null path-item":      `{"paths": {"/a": null}}`,
		"scalar operation":    `{"paths": {"/a": {"get": 5}}}`,
		"scalar schemas":      `{"paths": {}, "components": {"schemas": "none"}}`,
		"ref to nowhere":      `{"paths": {"/a": {"get": {"operationId": "a", "x": {"$ref": "#/definitions/Nope"}}}}}`,
	}

	for name, src := range docs {
		t.Run(name, func(t *testing.T) {
			doc := testutil.MustDecode(t, src)
			assert.NotPanics(t, func() {
				for _, invert := range []bool{false, true} {
					result := New().Filter(doc.Clone(), []string{"a"}, []string{"A"}, invert)
					assert.Equal(t, StatusApplied, result.Status)
				}
			})
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "applied", StatusApplied.String())
	assert.Equal(t, "no-op-empty-selection", StatusNoOpEmptySelection.String())
	assert.Equal(t, "unknown", Status(0).String())
}
