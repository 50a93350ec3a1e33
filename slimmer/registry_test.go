package slimmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikejonesguy/SlimSwagger/internal/testutil"
)

func TestNewRegistry(t *testing.T) {
	t.Run("OAS 2.0 definitions", func(t *testing.T) {
		r := NewRegistry(testutil.MustDecode(t, testutil.PetstoreOAS2YAML))
		assert.Equal(t, DefinitionsPointer, r.Pointer())
		assert.Equal(t, []string{"Pet", "Error", "Unused"}, r.IDs())
		assert.Equal(t, 3, r.Len())
	})

	t.Run("OAS 3.x components.schemas", func(t *testing.T) {
		r := NewRegistry(testutil.MustDecode(t, testutil.PetstoreOAS3JSON))
		assert.Equal(t, ComponentsPointer, r.Pointer())
		assert.Equal(t, []string{"Pet", "NewPet", "Error", "Unused"}, r.IDs())
	})

	t.Run("definitions wins over components", func(t *testing.T) {
		r := NewRegistry(testutil.MustDecode(t, `
definitions: {A: {}}
components: {schemas: {B: {}}}
`))
		assert.Equal(t, []string{"A"}, r.IDs())
	})

	t.Run("non-mapping definitions falls through", func(t *testing.T) {
		r := NewRegistry(testutil.MustDecode(t, `
definitions: null
components: {schemas: {B: {}}}
`))
		assert.Equal(t, []string{"B"}, r.IDs())
	})

	t.Run("no container is empty", func(t *testing.T) {
		r := NewRegistry(testutil.MustDecode(t, `{"swagger": "2.0"}`))
		assert.Empty(t, r.Pointer())
		assert.Empty(t, r.IDs())
		assert.Equal(t, 0, r.Len())
		assert.False(t, r.Has("Pet"))
		assert.False(t, r.Remove("Pet"))
		_, _, ok := r.Resolve("#/definitions/Pet")
		assert.False(t, ok)
	})

	t.Run("nil document is empty", func(t *testing.T) {
		r := NewRegistry(nil)
		assert.Equal(t, 0, r.Len())
	})
}

func TestRegistryGetAndRemove(t *testing.T) {
	doc := testutil.MustDecode(t, testutil.PetstoreOAS2YAML)
	r := NewRegistry(doc)

	body, ok := r.Get("Pet")
	require.True(t, ok)
	assert.Equal(t, "object", body.GetString("type"))

	id, body, ok := r.Resolve("#/definitions/Error")
	require.True(t, ok)
	assert.Equal(t, "Error", id)
	assert.True(t, body.IsMapping())

	assert.True(t, r.Remove("Unused"))
	assert.False(t, doc.Lookup("definitions").Has("Unused"), "removal writes through to the document")
}

func TestSchemaID(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"#/definitions/Pet", "Pet"},
		{"#/components/schemas/Pet", "Pet"},
		{"#/components/schemas/a~1b", "a/b"},
		{"#/components/schemas/a~0b", "a~b"},
		{"#/definitions/Pet%20Type", "Pet Type"},
		{"#/definitions/100%", "100%"},
		{"Pet", "Pet"},
		{"other.json#/definitions/Pet", "other.json#/definitions/Pet"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, SchemaID(tt.token))
		})
	}
}
