package movetext

import "strings"

// StripOptions selects which annotation forms Strip removes. The zero
// value removes nothing.
type StripOptions struct {
	Comments   bool // brace comments and ';' line comments
	NAGs       bool // '$' followed by digits, outside comments
	Variations bool // parenthesized variations, wholesale at any depth

	// OnStray, when non-nil, receives unmatched closing delimiters.
	OnStray StrayFunc
}

func (o StripOptions) none() bool {
	return !o.Comments && !o.NAGs && !o.Variations
}

// Strip rewrites move text with the selected annotations removed.
//
// Runs of space, tab, and carriage return collapse to a single space so
// elisions leave no gaps, and a space is dropped before a delimiter that
// closes an open group; newlines pass through, including the one ending
// a removed ';' comment, so line structure survives. A '$' not followed
// by a digit stays. When anything is removed, a trailing top-level result
// token is dropped too; the outcome remains available in the Result tag.
// Output is trimmed, and stripping already-stripped text with the same
// options returns it unchanged.
func Strip(text string, opts StripOptions) string {
	if opts.none() {
		return text
	}

	sc := Scanner{Comments: true, Variations: true, OnStray: opts.OnStray}
	var sb strings.Builder
	sb.Grow(len(text))
	pending := false // a collapsed space not yet written

	for i := 0; i < len(text); i++ {
		ch := text[i]
		before := sc.State()
		class := sc.Step(ch)
		st := sc.State()

		// Variation content goes wholesale, comments inside it included.
		if opts.Variations && (st.Depth > 0 || class == ExitVariation) {
			continue
		}

		if class == EnterComment || class == InComment || class == ExitComment {
			if opts.Comments {
				if class == ExitComment && ch == '\n' {
					pending = false
					sb.WriteByte('\n')
				}
				continue
			}
			// Kept comments flow through the copy path below.
		}

		if opts.NAGs && ch == '$' && !st.InAnyComment() && i+1 < len(text) && isDigit(text[i+1]) {
			j := i + 1
			for j < len(text) && isDigit(text[j]) {
				sc.Step(text[j])
				j++
			}
			i = j - 1
			continue
		}

		switch {
		case ch == '\n':
			pending = false
			sb.WriteByte('\n')
		case ch == ' ' || ch == '\t' || ch == '\r':
			pending = true
		default:
			if pending {
				closes := (ch == ')' && before.Depth > 0 && !before.InAnyComment()) ||
					(ch == '}' && before.InBraceComment)
				if sb.Len() > 0 && !closes {
					sb.WriteByte(' ')
				}
				pending = false
			}
			sb.WriteByte(ch)
		}
	}

	out := strings.TrimSpace(sb.String())
	return trimTrailingResult(out)
}

// trimTrailingResult drops a result token from the end of stripped text.
// Only a token the scanner classifies as top-level plain content counts;
// a result-shaped word inside a kept comment or variation stays.
func trimTrailingResult(s string) string {
	sc := Scanner{Comments: true, Variations: true}
	start, end := -1, -1
	cur := -1
	for i := 0; i < len(s); i++ {
		class := sc.Step(s[i])
		if class == Plain && !isSpace(s[i]) {
			if cur < 0 {
				cur = i
			}
			continue
		}
		if cur >= 0 {
			start, end = cur, i
			cur = -1
		}
	}
	if cur >= 0 {
		start, end = cur, len(s)
	}
	if start < 0 || end != len(s) || !isResult(s[start:end]) {
		return s
	}
	return strings.TrimRight(s[:start], " \t\r\n")
}
