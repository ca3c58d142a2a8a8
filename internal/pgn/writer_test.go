package pgn

import (
	"strings"
	"testing"

	"github.com/ianrastall/pgnfilter/internal/testutil"
)

func writeOne(t *testing.T, moveText string, opts []WriterOption, pairs ...string) string {
	t.Helper()
	var sb strings.Builder
	w := NewWriter(&sb, opts...)
	testutil.AssertNoError(t, w.WriteRecord(testutil.NewRecord(t, moveText, pairs...)))
	testutil.AssertNoError(t, w.Flush())
	return sb.String()
}

func TestWriterBasicRecord(t *testing.T) {
	got := writeOne(t, "1. e4 e5 1-0", nil, "Event", "Test", "White", "Player1")
	want := "[Event \"Test\"]\n[White \"Player1\"]\n\n1. e4 e5 1-0\n"
	testutil.AssertEqual(t, got, want)
}

func TestWriterTagInsertionOrder(t *testing.T) {
	// Tags come out in the order they went in, not roster order.
	got := writeOne(t, "*", nil, "WhiteElo", "2100", "Event", "Late")
	if !strings.HasPrefix(got, "[WhiteElo \"2100\"]\n[Event \"Late\"]\n") {
		t.Errorf("tags reordered:\n%s", got)
	}
}

func TestWriterEscapesTagValues(t *testing.T) {
	got := writeOne(t, "*", nil, "Event", `He said "go" via C:\games`)
	want := `[Event "He said \"go\" via C:\\games"]`
	if !strings.Contains(got, want) {
		t.Errorf("escaping wrong:\ngot  %s\nwant line %s", got, want)
	}
}

func TestWriterRosterOnly(t *testing.T) {
	got := writeOne(t, "1. e4 *", []WriterOption{WithRosterOnly()},
		"Event", "Test", "WhiteElo", "2100", "Result", "*")
	want := "[Event \"Test\"]\n" +
		"[Site \"?\"]\n" +
		"[Date \"?\"]\n" +
		"[Round \"?\"]\n" +
		"[White \"?\"]\n" +
		"[Black \"?\"]\n" +
		"[Result \"*\"]\n" +
		"\n1. e4 *\n"
	testutil.AssertEqual(t, got, want)
}

func TestWriterWrapsLongMoveText(t *testing.T) {
	var moves []string
	for i := 1; i <= 40; i++ {
		moves = append(moves, "1. e4 e5")
	}
	got := writeOne(t, strings.Join(moves, " "), nil, "Event", "X")
	body := strings.SplitN(got, "\n\n", 2)[1]
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		if len(line) > DefaultLineLength {
			t.Errorf("line longer than %d columns: %q", DefaultLineLength, line)
		}
	}
	// Wrapping must not change the content, only the line breaks.
	joined := strings.ReplaceAll(strings.TrimRight(body, "\n"), "\n", " ")
	testutil.AssertEqual(t, joined, strings.Join(moves, " "))
}

func TestWriterNeverBreaksInsideComment(t *testing.T) {
	comment := "{" + strings.Repeat("long comment text ", 10) + "end}"
	got := writeOne(t, "1. e4 "+comment+" e5 *", nil, "Event", "X")
	if !strings.Contains(got, comment) {
		t.Errorf("comment was broken across lines:\n%s", got)
	}
}

func TestWriterPreservesHardNewlines(t *testing.T) {
	got := writeOne(t, "1. e4 ; best by test\ne5 *", nil, "Event", "X")
	if !strings.Contains(got, "; best by test\ne5 *") {
		t.Errorf("line comment structure lost:\n%s", got)
	}
}

func TestWriterSeparator(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	testutil.AssertNoError(t, w.WriteRecord(testutil.NewRecord(t, "1. e4 1-0", "Event", "One")))
	testutil.AssertNoError(t, w.WriteSeparator())
	testutil.AssertNoError(t, w.WriteRecord(testutil.NewRecord(t, "1. d4 *", "Event", "Two")))
	testutil.AssertNoError(t, w.Flush())

	// The concatenation must itself read back as two records.
	recs := readAll(t, sb.String())
	if len(recs) != 2 {
		t.Fatalf("round trip produced %d records, want 2", len(recs))
	}
	testutil.AssertEqual(t, recs[0].MoveText, "1. e4 1-0")
	testutil.AssertEqual(t, recs[1].GetTag("Event"), "Two")
}

func TestWriterCustomLineLength(t *testing.T) {
	got := writeOne(t, "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6", []WriterOption{WithLineLength(12)}, "Event", "X")
	body := strings.SplitN(got, "\n\n", 2)[1]
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		if len(line) > 12 {
			t.Errorf("line longer than 12 columns: %q", line)
		}
	}
}
