package slimmer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikejonesguy/SlimSwagger/internal/testutil"
)

func TestStatsCapture(t *testing.T) {
	doc := testutil.MustDecode(t, testutil.PetstoreOAS3JSON)

	var s Stats
	s.Capture(doc, SnapshotBefore)
	assert.Equal(t, Stats{OriginalOperations: 3, OriginalSchemas: 4}, s)

	doc.Lookup("components", "schemas").Delete("Unused")
	doc.Lookup("paths").Delete("/pets/{petId}")
	s.Capture(doc, SnapshotAfter)
	assert.Equal(t, Stats{OriginalOperations: 3, OriginalSchemas: 4, SlimmedOperations: 2, SlimmedSchemas: 3}, s)
}

func TestStatsReport(t *testing.T) {
	s := Stats{OriginalOperations: 2, OriginalSchemas: 3, SlimmedOperations: 1, SlimmedSchemas: 1}

	want := "Results:\n" +
		"  Original: 2 operations; 3 models\n" +
		"  Slimmed:  1 operations; 1 models\n" +
		"\n" +
		"Slimmed swagger spec saved to: out/slim-swagger.json"
	assert.Equal(t, want, s.Report("out/slim-swagger.json"))
}
