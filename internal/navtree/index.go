package navtree

import (
	"slices"
	"strconv"
)

// Index is the ordered NAVTREEINDEX table. Entry i is the first link held
// by the viewer's navtreeindex<i> page.
type Index struct {
	entries []string
}

// NewIndex copies entries into a new Index.
func NewIndex(entries []string) Index {
	return Index{entries: slices.Clone(entries)}
}

// Len returns the number of entries.
func (x Index) Len() int { return len(x.entries) }

// Get returns the entry at pos.
func (x Index) Get(pos int) (string, error) {
	if pos < 0 || pos >= len(x.entries) {
		return "", &OutOfRangeError{Position: pos, Length: len(x.entries)}
	}
	return x.entries[pos], nil
}

// Entries returns a copy of all entries in order.
func (x Index) Entries() []string {
	return slices.Clone(x.entries)
}

// Equal reports whether both tables hold the same entries in the same order.
func (x Index) Equal(y Index) bool {
	return slices.Equal(x.entries, y.entries)
}

// PageFor returns the index page that holds url: the last position whose
// entry compares less than or equal to url. URLs sorting before the first
// entry, and empty tables, map to page 0.
func (x Index) PageFor(url string) int {
	i := -1
	for i+1 < len(x.entries) && x.entries[i+1] <= url {
		i++
	}
	if i < 0 {
		return 0
	}
	return i
}

// ScriptName returns the base name of the script holding page pos.
func (x Index) ScriptName(pos int) (string, error) {
	if pos < 0 || pos >= len(x.entries) {
		return "", &OutOfRangeError{Position: pos, Length: len(x.entries)}
	}
	return "navtreeindex" + strconv.Itoa(pos), nil
}
