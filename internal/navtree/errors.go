package navtree

import (
	"fmt"
	"strings"
)

// ParseError reports a tree entry that is not a valid node. Path is the
// position of the offending entry, e.g. "NAVTREE[0][2][5]".
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("navtree: parse %s: %s", e.Path, e.Reason)
}

// OutOfRangeError is returned by Index.Get for positions outside [0, Length).
type OutOfRangeError struct {
	Position int
	Length   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("navtree: index position %d out of range [0, %d)", e.Position, e.Length)
}

// UnknownKeyError is returned for UI string keys other than SyncOn and SyncOff.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("navtree: unknown string key %q", e.Key)
}

// MalformedInputError reports a blob whose top-level shape is not the
// expected set of declarations. Err, when set, is the underlying cause.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("navtree: malformed input: %s: %v", e.Reason, e.Err)
	}
	return "navtree: malformed input: " + e.Reason
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func entryPath(base string, idx ...int) string {
	var b strings.Builder
	b.WriteString(base)
	for _, i := range idx {
		fmt.Fprintf(&b, "[%d]", i)
	}
	return b.String()
}
