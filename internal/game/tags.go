package game

import "strings"

// SevenTagRoster contains the seven required PGN tags in export order.
var SevenTagRoster = []string{
	"Event",
	"Site",
	"Date",
	"Round",
	"White",
	"Black",
	"Result",
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required
// tags. Matching is case-insensitive, like record tag lookup.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
