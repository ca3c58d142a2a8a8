// Package movetext provides the character-level machinery for PGN move
// text: one scanner that tracks comment and variation context, and the
// tokenizer, annotation stripper, and checkmate detector built on it.
package movetext

// Class classifies one move-text byte relative to comment and variation
// context.
type Class uint8

const (
	// Plain bytes are outside every comment and variation. Move and
	// annotation logic looks only at these.
	Plain Class = iota
	EnterComment
	InComment
	ExitComment
	EnterVariation
	InVariation
	ExitVariation
)

// classNames maps classes to their string representations.
var classNames = [...]string{
	Plain:          "PLAIN",
	EnterComment:   "ENTER_COMMENT",
	InComment:      "IN_COMMENT",
	ExitComment:    "EXIT_COMMENT",
	EnterVariation: "ENTER_VARIATION",
	InVariation:    "IN_VARIATION",
	ExitVariation:  "EXIT_VARIATION",
}

// String returns the string representation of a class.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "UNKNOWN"
}

// State is the nesting context at a point in a scan. The zero value is
// the start-of-text state.
type State struct {
	InBraceComment bool
	InLineComment  bool
	Depth          int // variation nesting depth
}

// InAnyComment reports whether the cursor is inside either comment form.
func (st State) InAnyComment() bool {
	return st.InBraceComment || st.InLineComment
}

// StrayFunc receives the byte offset and value of an unmatched closing
// delimiter. The scanner absorbs such bytes instead of failing; real-world
// PGN contains them.
type StrayFunc func(offset int, ch byte)

// Scanner walks move text byte by byte, classifying each byte and
// maintaining a single State. Brace comments do not nest; a second '{'
// inside one is comment content. Line comments run from ';' to the next
// newline, which is classified ExitComment. '(' inside a comment is
// comment content and never opens a variation.
//
// The interest fields select which structures the scanner reacts to. With
// Comments false the bytes '{', '}' and ';' are ordinary content, so a
// caller that reacts to variations in text that may contain comments
// should enable both. The zero value reacts to nothing and classifies
// every byte Plain.
type Scanner struct {
	Comments   bool
	Variations bool

	// OnStray, when non-nil, is called for each unmatched '}' or ')'.
	OnStray StrayFunc

	state State
	pos   int
}

// State returns the context after the most recently scanned byte.
func (s *Scanner) State() State {
	return s.state
}

// Reset returns the scanner to the start-of-text state.
func (s *Scanner) Reset() {
	s.state = State{}
	s.pos = 0
}

// Scan walks text from the beginning, invoking action for every byte with
// its classification and the state in effect after the byte. The walk
// stops early if action returns false. Scan resets the scanner first, so
// a Scanner value is reusable.
func (s *Scanner) Scan(text string, action func(ch byte, class Class, st State) bool) {
	s.Reset()
	for i := 0; i < len(text); i++ {
		class := s.Step(text[i])
		if !action(text[i], class, s.state) {
			return
		}
	}
}

// Step advances the scanner by one byte and returns its classification.
// Callers that segment input themselves (the stream reader feeds whole
// lines) use Step directly and Reset between games.
func (s *Scanner) Step(ch byte) Class {
	class := s.classify(ch)
	s.pos++
	return class
}

// classify updates the state for ch and returns its class. Comments take
// precedence over variations: while inside one, every byte except its
// terminator is comment content.
func (s *Scanner) classify(ch byte) Class {
	st := &s.state

	if st.InLineComment {
		if ch == '\n' {
			st.InLineComment = false
			return ExitComment
		}
		return InComment
	}
	if st.InBraceComment {
		if ch == '}' {
			st.InBraceComment = false
			return ExitComment
		}
		return InComment
	}

	switch ch {
	case '{':
		if s.Comments {
			st.InBraceComment = true
			return EnterComment
		}
	case ';':
		if s.Comments {
			st.InLineComment = true
			return EnterComment
		}
	case '}':
		if s.Comments {
			s.stray(ch)
			return ExitComment
		}
	case '(':
		if s.Variations {
			st.Depth++
			return EnterVariation
		}
	case ')':
		if s.Variations {
			if st.Depth > 0 {
				st.Depth--
				return ExitVariation
			}
			s.stray(ch)
			return ExitVariation
		}
	}

	if st.Depth > 0 {
		return InVariation
	}
	return Plain
}

// stray reports an unmatched closing delimiter at the current position.
func (s *Scanner) stray(ch byte) {
	if s.OnStray != nil {
		s.OnStray(s.pos, ch)
	}
}
