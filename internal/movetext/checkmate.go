package movetext

// HasCheckmate reports whether the move text contains a mate marker '#'
// outside every comment and variation. It scans bytes without tokenizing
// and stops at the first hit, so a prose '#' inside a comment or a mate
// occurring only in a variation does not count.
func HasCheckmate(text string) bool {
	found := false
	sc := Scanner{Comments: true, Variations: true}
	sc.Scan(text, func(ch byte, class Class, _ State) bool {
		if class == Plain && ch == '#' {
			found = true
			return false
		}
		return true
	})
	return found
}
