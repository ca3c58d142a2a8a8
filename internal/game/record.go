// Package game defines the record passed between pipeline stages: an
// ordered PGN tag list with case-insensitive lookup, plus the raw move text.
package game

import "strings"

// Tag is a single PGN tag pair.
type Tag struct {
	Name  string
	Value string
}

// Record represents one game pulled from a PGN stream.
//
// Tags keep their input order and original spelling so that an unmodified
// record round-trips through the writer; lookups match names
// case-insensitively. MoveText holds the body between the tag section and
// the next game unparsed: SAN tokens, move numbers, comments, NAGs,
// variations, and a possible result token.
type Record struct {
	tags  []Tag
	index map[string]int // lowercased name -> position in tags

	MoveText string
}

// NewRecord creates a new empty record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// GetTag returns a tag value, or empty string if not present.
func (r *Record) GetTag(name string) string {
	v, _ := r.LookupTag(name)
	return v
}

// LookupTag returns a tag value and whether the tag is present.
func (r *Record) LookupTag(name string) (string, bool) {
	i, ok := r.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return r.tags[i].Value, true
}

// HasTag returns true if the tag is present.
func (r *Record) HasTag(name string) bool {
	_, ok := r.LookupTag(name)
	return ok
}

// SetTag sets a tag value. A tag that already exists under any spelling
// keeps its position and original name; otherwise the tag is appended.
func (r *Record) SetTag(name, value string) {
	r.ensureIndex()
	key := strings.ToLower(name)
	if i, ok := r.index[key]; ok {
		r.tags[i].Value = value
		return
	}
	r.index[key] = len(r.tags)
	r.tags = append(r.tags, Tag{Name: name, Value: value})
}

// Tags returns the tag pairs in insertion order.
// The returned slice is owned by the record and must not be modified.
func (r *Record) Tags() []Tag {
	return r.tags
}

// TagCount returns the number of tags.
func (r *Record) TagCount() int {
	return len(r.tags)
}

// Clone returns an independent copy of the record. Stages that rewrite
// move text clone first so earlier stages never see the change.
func (r *Record) Clone() *Record {
	out := &Record{
		tags:     make([]Tag, len(r.tags)),
		index:    make(map[string]int, len(r.index)),
		MoveText: r.MoveText,
	}
	copy(out.tags, r.tags)
	for k, v := range r.index {
		out.index[k] = v
	}
	return out
}

// ensureIndex initializes the lookup index if the record was not built
// with NewRecord.
func (r *Record) ensureIndex() {
	if r.index == nil {
		r.index = make(map[string]int)
	}
}
