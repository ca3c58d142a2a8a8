package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ianrastall/pgnfilter/internal/game"
	"github.com/ianrastall/pgnfilter/internal/movetext"
)

// DefaultLineLength is the column at which move text wraps.
const DefaultLineLength = 80

// Writer serializes records to PGN: the tag section, a blank line, and
// the move text wrapped at a maximum line length. Output is buffered;
// call Flush before inspecting the underlying writer.
type Writer struct {
	bw         *bufio.Writer
	maxLine    int
	rosterOnly bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLineLength sets the wrap column for move text.
func WithLineLength(n int) WriterOption {
	return func(w *Writer) {
		if n > 0 {
			w.maxLine = n
		}
	}
}

// WithRosterOnly restricts the tag section to the Seven Tag Roster, in
// roster order, with missing values written as "?".
func WithRosterOnly() WriterOption {
	return func(w *Writer) {
		w.rosterOnly = true
	}
}

// NewWriter creates a writer over w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	pw := &Writer{bw: bufio.NewWriter(w), maxLine: DefaultLineLength}
	for _, opt := range opts {
		opt(pw)
	}
	return pw
}

// WriteRecord writes one record.
func (w *Writer) WriteRecord(rec *game.Record) error {
	if err := w.writeTags(rec); err != nil {
		return err
	}
	if _, err := w.bw.WriteString("\n"); err != nil {
		return err
	}
	return w.writeMoveText(rec.MoveText)
}

// WriteSeparator writes the blank line that separates two records, so
// concatenated output stays valid PGN.
func (w *Writer) WriteSeparator() error {
	_, err := w.bw.WriteString("\n")
	return err
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

func (w *Writer) writeTags(rec *game.Record) error {
	if w.rosterOnly {
		for _, name := range game.SevenTagRoster {
			value := rec.GetTag(name)
			if value == "" {
				value = "?"
			}
			if _, err := fmt.Fprintf(w.bw, "[%s \"%s\"]\n", name, escapeTagValue(value)); err != nil {
				return err
			}
		}
		return nil
	}
	for _, tag := range rec.Tags() {
		if _, err := fmt.Fprintf(w.bw, "[%s \"%s\"]\n", tag.Name, escapeTagValue(tag.Value)); err != nil {
			return err
		}
	}
	return nil
}

// escapeTagValue escapes backslashes and double quotes in a tag value.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// writeMoveText writes move text wrapped at the maximum line length.
// Line breaks are inserted only at spaces outside comments, so a brace
// comment never gains a newline the reader could misread as structure
// and a ';' comment keeps its whole line. Existing newlines are hard
// breaks. A single unit longer than the limit goes on a line of its
// own unbroken.
func (w *Writer) writeMoveText(text string) error {
	sc := movetext.Scanner{Comments: true, Variations: true}
	lineLen := 0
	var unit []byte

	writeUnit := func() error {
		if len(unit) == 0 {
			return nil
		}
		if lineLen > 0 {
			if lineLen+1+len(unit) > w.maxLine {
				if err := w.bw.WriteByte('\n'); err != nil {
					return err
				}
				lineLen = 0
			} else {
				if err := w.bw.WriteByte(' '); err != nil {
					return err
				}
				lineLen++
			}
		}
		if _, err := w.bw.Write(unit); err != nil {
			return err
		}
		lineLen += len(unit)
		unit = unit[:0]
		return nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		st := sc.State()
		sc.Step(ch)
		switch {
		case ch == '\n':
			if err := writeUnit(); err != nil {
				return err
			}
			if err := w.bw.WriteByte('\n'); err != nil {
				return err
			}
			lineLen = 0
		case ch == ' ' && !st.InAnyComment():
			if err := writeUnit(); err != nil {
				return err
			}
		default:
			unit = append(unit, ch)
		}
	}
	if err := writeUnit(); err != nil {
		return err
	}
	if lineLen > 0 {
		return w.bw.WriteByte('\n')
	}
	return nil
}
