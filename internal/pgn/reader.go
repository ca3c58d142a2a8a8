package pgn

import (
	"bufio"
	"io"
	"strings"

	"github.com/ianrastall/pgnfilter/internal/game"
	"github.com/ianrastall/pgnfilter/internal/movetext"
)

// Reader segments a PGN byte stream into game records. Segmentation is
// line-oriented: tag lines accumulate into the record, the first other
// non-blank line starts the move text, and the next tag line ends the
// record. A tag-shaped line inside an open brace comment is comment
// content and does not end anything, which is why the reader threads
// the move-text lines through a scanner.
type Reader struct {
	br *bufio.Reader
	sc movetext.Scanner

	// held is a tag line that belongs to the next record. The boundary
	// line is read before the current record can be returned, so it is
	// pushed back here.
	held string
	eof  bool
}

// NewReader creates a reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		br: bufio.NewReader(r),
		sc: movetext.Scanner{Comments: true},
	}
}

// Next returns the next record in the stream, or (nil, nil) once the
// stream is exhausted. Lines of any length are handled; a read error
// other than end of input is returned as is.
func (r *Reader) Next() (*game.Record, error) {
	rec := game.NewRecord()
	var moveLines []string
	inMoveText := false
	tagsDone := false
	r.sc.Reset()

	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if r.eof && line == "" {
			break
		}

		trimmed := strings.TrimRight(line, "\r\n")
		blank := strings.TrimSpace(trimmed) == ""

		if !inMoveText {
			if blank {
				if rec.TagCount() > 0 {
					tagsDone = true
				}
				continue
			}
			if name, value, ok := parseTagLine(trimmed); ok {
				if tagsDone {
					// A fresh tag section after the blank line: this
					// record has no move text, the line is the next
					// game's.
					r.held = line
					return rec, nil
				}
				rec.SetTag(name, value)
				continue
			}
			inMoveText = true
			// Fall through to the move-text handling below.
		}

		if blank {
			r.stepLine(trimmed)
			continue
		}
		if _, _, ok := parseTagLine(trimmed); ok && !r.sc.State().InBraceComment {
			r.held = line
			break
		}
		r.stepLine(trimmed)
		moveLines = append(moveLines, trimmed)
	}

	rec.MoveText = strings.Join(moveLines, "\n")
	if rec.TagCount() == 0 && rec.MoveText == "" {
		return nil, nil
	}
	return rec, nil
}

// readLine returns the held-back boundary line if there is one,
// otherwise the next line from the stream including its newline. At end
// of input the final unterminated line, possibly empty, is returned
// with r.eof set.
func (r *Reader) readLine() (string, error) {
	if r.held != "" {
		line := r.held
		r.held = ""
		return line, nil
	}
	if r.eof {
		return "", nil
	}
	line, err := r.br.ReadString('\n')
	if err == io.EOF {
		r.eof = true
		return line, nil
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

// stepLine advances the comment scanner across one move-text line and
// its terminating newline so brace-comment state carries across lines
// and an open ';' comment ends with its line.
func (r *Reader) stepLine(line string) {
	for i := 0; i < len(line); i++ {
		r.sc.Step(line[i])
	}
	r.sc.Step('\n')
}

// parseTagLine parses a `[Name "value"]` line. The value may contain
// \" and \\ escapes, which are resolved. Anything that does not match
// the shape exactly, trailing junk aside, is not a tag line.
func parseTagLine(line string) (name, value string, ok bool) {
	s := strings.TrimSpace(line)
	if len(s) < 2 || s[0] != '[' {
		return "", "", false
	}
	i := 1
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	for i < len(s) && isTagNameByte(s[i]) {
		i++
	}
	if i == start {
		return "", "", false
	}
	name = s[start:i]
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) || s[i] != '"' {
		return "", "", false
	}
	i++
	var sb strings.Builder
	for i < len(s) {
		ch := s[i]
		if ch == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			sb.WriteByte(s[i+1])
			i += 2
			continue
		}
		if ch == '"' {
			break
		}
		sb.WriteByte(ch)
		i++
	}
	if i >= len(s) || s[i] != '"' {
		return "", "", false
	}
	i++
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) || s[i] != ']' {
		return "", "", false
	}
	return name, sb.String(), true
}

func isTagNameByte(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		return true
	case ch >= '0' && ch <= '9':
		return true
	case ch == '_':
		return true
	}
	return false
}
