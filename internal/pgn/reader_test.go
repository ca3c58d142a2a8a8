package pgn

import (
	"strings"
	"testing"

	"github.com/ianrastall/pgnfilter/internal/game"
	"github.com/ianrastall/pgnfilter/internal/testutil"
)

// readAll drains a reader, failing the test on any error.
func readAll(t *testing.T, input string) []*game.Record {
	t.Helper()
	r := NewReader(strings.NewReader(input))
	var recs []*game.Record
	for {
		rec, err := r.Next()
		testutil.AssertNoError(t, err)
		if rec == nil {
			return recs
		}
		recs = append(recs, rec)
	}
}

func TestReaderSingleGame(t *testing.T) {
	input := "[Event \"Test\"]\n[White \"Player1\"]\n\n1. e4 e5 2. Nf3 1-0\n"
	recs := readAll(t, input)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	rec := recs[0]
	testutil.AssertEqual(t, rec.GetTag("Event"), "Test")
	testutil.AssertEqual(t, rec.GetTag("White"), "Player1")
	testutil.AssertEqual(t, rec.MoveText, "1. e4 e5 2. Nf3 1-0")
}

func TestReaderMultipleGames(t *testing.T) {
	input := testutil.PGNText(
		testutil.NewRecord(t, "1. e4 e5 1-0", "Event", "One"),
		testutil.NewRecord(t, "1. d4 d5 *", "Event", "Two"),
		testutil.NewRecord(t, "1. c4 0-1", "Event", "Three"),
	)
	recs := readAll(t, input)
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	testutil.AssertEqual(t, recs[0].GetTag("Event"), "One")
	testutil.AssertEqual(t, recs[1].GetTag("Event"), "Two")
	testutil.AssertEqual(t, recs[2].GetTag("Event"), "Three")
	testutil.AssertEqual(t, recs[2].MoveText, "1. c4 0-1")
}

func TestReaderMissingSeparatorLine(t *testing.T) {
	// The second game's tag section starts directly after the first
	// game's move text. The tag line is the boundary.
	input := "[Event \"One\"]\n\n1. e4 e5 1-0\n[Event \"Two\"]\n\n1. d4 *\n"
	recs := readAll(t, input)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	testutil.AssertEqual(t, recs[0].MoveText, "1. e4 e5 1-0")
	testutil.AssertEqual(t, recs[1].GetTag("Event"), "Two")
}

func TestReaderTagLineInsideBraceComment(t *testing.T) {
	// A tag-shaped line inside an open brace comment is move text, not
	// a game boundary.
	input := "[Event \"One\"]\n\n1. e4 {a comment\n[Event \"fake\"]\nstill the comment} e5 *\n\n[Event \"Two\"]\n\n1. d4 *\n"
	recs := readAll(t, input)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	want := "1. e4 {a comment\n[Event \"fake\"]\nstill the comment} e5 *"
	testutil.AssertEqual(t, recs[0].MoveText, want)
	testutil.AssertEqual(t, recs[1].GetTag("Event"), "Two")
}

func TestReaderTagValueEscapes(t *testing.T) {
	input := "[Event \"He said \\\"go\\\"\"]\n[Site \"C:\\\\games\"]\n\n1. e4 *\n"
	recs := readAll(t, input)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	testutil.AssertEqual(t, recs[0].GetTag("Event"), `He said "go"`)
	testutil.AssertEqual(t, recs[0].GetTag("Site"), `C:\games`)
}

func TestReaderGameWithoutMoveText(t *testing.T) {
	input := "[Event \"Empty\"]\n[Result \"*\"]\n\n[Event \"Next\"]\n\n1. e4 *\n"
	recs := readAll(t, input)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	testutil.AssertEqual(t, recs[0].GetTag("Event"), "Empty")
	testutil.AssertEqual(t, recs[0].MoveText, "")
	testutil.AssertEqual(t, recs[1].MoveText, "1. e4 *")
}

func TestReaderMoveTextOnly(t *testing.T) {
	recs := readAll(t, "1. e4 e5 2. Nf3 Nc6 1/2-1/2")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	testutil.AssertEqual(t, recs[0].TagCount(), 0)
	testutil.AssertEqual(t, recs[0].MoveText, "1. e4 e5 2. Nf3 Nc6 1/2-1/2")
}

func TestReaderNoTrailingNewline(t *testing.T) {
	recs := readAll(t, "[Event \"X\"]\n\n1. e4 e5 *")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	testutil.AssertEqual(t, recs[0].MoveText, "1. e4 e5 *")
}

func TestReaderEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n\n", "   \n\t\n"} {
		recs := readAll(t, input)
		if len(recs) != 0 {
			t.Errorf("input %q: got %d records, want 0", input, len(recs))
		}
	}
}

func TestReaderMultiLineMoveText(t *testing.T) {
	input := "[Event \"X\"]\n\n1. e4 e5 2. Nf3 Nc6\n3. Bb5 a6 4. Ba4 Nf6\n1-0\n"
	recs := readAll(t, input)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	want := "1. e4 e5 2. Nf3 Nc6\n3. Bb5 a6 4. Ba4 Nf6\n1-0"
	testutil.AssertEqual(t, recs[0].MoveText, want)
}

func TestParseTagLine(t *testing.T) {
	tests := []struct {
		line  string
		name  string
		value string
		ok    bool
	}{
		{`[Event "Rated Blitz"]`, "Event", "Rated Blitz", true},
		{`[ WhiteElo "2100" ]`, "WhiteElo", "2100", true},
		{`[Site ""]`, "Site", "", true},
		{`[Opening "King's \"Gambit\""]`, "Opening", `King's "Gambit"`, true},
		{`1. e4 e5 *`, "", "", false},
		{`[Event "unterminated]`, "", "", false},
		{`[Event no-quotes]`, "", "", false},
		{`["value only"]`, "", "", false},
		{`{[Event "x"]}`, "", "", false},
		{``, "", "", false},
	}
	for _, tt := range tests {
		name, value, ok := parseTagLine(tt.line)
		if ok != tt.ok || name != tt.name || value != tt.value {
			t.Errorf("parseTagLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.line, name, value, ok, tt.name, tt.value, tt.ok)
		}
	}
}
