package testutil

import (
	"strings"
	"testing"

	"github.com/ianrastall/pgnfilter/internal/game"
)

// NewRecord builds a record from a move-text body and alternating tag
// name/value pairs. It calls t.Fatal on an odd number of pair
// arguments.
func NewRecord(t *testing.T, moveText string, pairs ...string) *game.Record {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("NewRecord: odd number of tag pair arguments (%d)", len(pairs))
	}
	rec := game.NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		rec.SetTag(pairs[i], pairs[i+1])
	}
	rec.MoveText = moveText
	return rec
}

// PGNText renders records as a PGN fixture: tag lines, a blank line,
// the move text, and a blank line between games. It does no wrapping
// and no escaping, so tests control the exact bytes a reader sees.
func PGNText(recs ...*game.Record) string {
	var sb strings.Builder
	for i, rec := range recs {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, tag := range rec.Tags() {
			sb.WriteString("[" + tag.Name + " \"" + tag.Value + "\"]\n")
		}
		sb.WriteString("\n")
		if rec.MoveText != "" {
			sb.WriteString(rec.MoveText + "\n")
		}
	}
	return sb.String()
}
