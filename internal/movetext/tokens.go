package movetext

import "strings"

// tokenAction says what to do with a normalized raw token.
type tokenAction uint8

const (
	tokenYield tokenAction = iota
	tokenSkip
	tokenStop
)

// Tokenizer yields normalized move tokens from move text, one half-move
// per token. Content inside comments and variations is skipped, move
// numbers and standalone annotations are dropped, and a result token ends
// the sequence without being yielded. Tokens come out lazily through
// Next; construct a new Tokenizer over the same text to restart.
type Tokenizer struct {
	// OnStray, when non-nil, receives unmatched closing delimiters
	// encountered while scanning. Set before the first call to Next.
	OnStray StrayFunc

	text string
	pos  int
	sc   Scanner
	done bool
}

// NewTokenizer creates a tokenizer over text.
func NewTokenizer(text string) *Tokenizer {
	return &Tokenizer{
		text: text,
		sc:   Scanner{Comments: true, Variations: true},
	}
}

// Next returns the next move token, or false when the text is exhausted
// or a result token was reached.
func (t *Tokenizer) Next() (string, bool) {
	t.sc.OnStray = t.OnStray
	for !t.done {
		raw := t.nextRaw()
		if raw == "" {
			t.done = true
			break
		}
		tok, action := normalize(raw)
		switch action {
		case tokenYield:
			return tok, true
		case tokenStop:
			t.done = true
		}
	}
	return "", false
}

// Count drains the tokenizer and returns the number of tokens remaining.
func (t *Tokenizer) Count() int {
	n := 0
	for {
		if _, ok := t.Next(); !ok {
			return n
		}
		n++
	}
}

// CountPlies returns the number of move tokens in text. Each yielded
// token is one half-move, so this is the game's ply count.
func CountPlies(text string) int {
	return NewTokenizer(text).Count()
}

// nextRaw returns the next run of plain non-whitespace bytes, or "" at
// end of text. Comment and variation content splits runs the same way
// whitespace does, so "e4{x}e5" produces two runs.
func (t *Tokenizer) nextRaw() string {
	start := -1
	for t.pos < len(t.text) {
		ch := t.text[t.pos]
		class := t.sc.Step(ch)
		t.pos++
		if class == Plain && !isSpace(ch) {
			if start < 0 {
				start = t.pos - 1
			}
			continue
		}
		if start >= 0 {
			return t.text[start : t.pos-1]
		}
	}
	if start >= 0 {
		return t.text[start:]
	}
	return ""
}

// normalize applies the token rules to one raw run: drop standalone
// annotations and move numbers, stop at results, trim trailing
// annotations, and normalize castling spelling.
func normalize(raw string) (string, tokenAction) {
	// A standalone NAG carries no move. A bare '$' counts as an empty NAG.
	if raw[0] == '$' && allDigits(raw[1:]) {
		return "", tokenSkip
	}
	if allDots(raw) {
		return "", tokenSkip
	}

	tok := stripMoveNumber(raw)
	if tok == "" || allGlyphs(tok) {
		return "", tokenSkip
	}
	if isResult(tok) {
		return "", tokenStop
	}

	tok = strings.TrimRight(tok, "+#!?")
	tok = trimTrailingNAG(tok)
	if tok == "" || allGlyphs(tok) {
		return "", tokenSkip
	}

	switch strings.ToLower(tok) {
	case "e.p.", "ep":
		return "", tokenSkip
	case "0-0", "o-o":
		return "O-O", tokenYield
	case "0-0-0", "o-o-o":
		return "O-O-O", tokenYield
	}
	return tok, tokenYield
}

// stripMoveNumber removes a leading "<digits>." or "<digits>..." prefix.
// A run of digits without a following dot is left alone.
func stripMoveNumber(tok string) string {
	i := 0
	for i < len(tok) && isDigit(tok[i]) {
		i++
	}
	if i == 0 || i >= len(tok) || tok[i] != '.' {
		return tok
	}
	j := i
	for j < len(tok) && tok[j] == '.' {
		j++
	}
	return tok[j:]
}

// trimTrailingNAG removes a trailing "$<digits>" suffix, as in "Nc6$2".
func trimTrailingNAG(tok string) string {
	i := len(tok)
	for i > 0 && isDigit(tok[i-1]) {
		i--
	}
	if i == len(tok) || i == 0 || tok[i-1] != '$' {
		return tok
	}
	return tok[:i-1]
}

// isResult reports whether tok is a game termination marker.
func isResult(tok string) bool {
	switch tok {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return false
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func allDots(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			return false
		}
	}
	return true
}

func allGlyphs(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '+', '#', '!', '?':
		default:
			return false
		}
	}
	return true
}
