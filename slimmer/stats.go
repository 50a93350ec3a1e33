package slimmer

import (
	"fmt"
	"strings"

	"github.com/mikejonesguy/SlimSwagger/node"
)

// Stats holds operation and schema counts taken before and after slimming.
type Stats struct {
	OriginalOperations int
	OriginalSchemas    int
	SlimmedOperations  int
	SlimmedSchemas     int
}

// Snapshot labels which half of Stats a count fills.
type Snapshot int

const (
	// SnapshotBefore records counts ahead of any mutation
	SnapshotBefore Snapshot = iota
	// SnapshotAfter records counts once pruning is done
	SnapshotAfter
)

// Capture counts the identified operations and the schemas of doc and stores
// them under when. It never mutates doc.
func (s *Stats) Capture(doc *node.Node, when Snapshot) {
	ops := len(ListOperationIDs(doc, false))
	schemas := NewRegistry(doc).Len()
	switch when {
	case SnapshotBefore:
		s.OriginalOperations, s.OriginalSchemas = ops, schemas
	case SnapshotAfter:
		s.SlimmedOperations, s.SlimmedSchemas = ops, schemas
	}
}

// Report formats the four-line summary printed after a slimmed document is
// written to output.
func (s Stats) Report(output string) string {
	var b strings.Builder
	b.WriteString("Results:\n")
	fmt.Fprintf(&b, "  Original: %d operations; %d models\n", s.OriginalOperations, s.OriginalSchemas)
	fmt.Fprintf(&b, "  Slimmed:  %d operations; %d models\n", s.SlimmedOperations, s.SlimmedSchemas)
	fmt.Fprintf(&b, "\nSlimmed swagger spec saved to: %s", output)
	return b.String()
}
