package navtree

import (
	"errors"
	"slices"
)

// Node is one entry of the sidebar navigation tree.
//
// A node has inline Children, a deferred Script naming a separate file that
// holds its children, or neither. Leaves always have a nil Children slice.
type Node struct {
	Label    string  `json:"label" yaml:"label"`
	Link     string  `json:"link" yaml:"link"`
	Script   string  `json:"script,omitempty" yaml:"script,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsLeaf reports whether the node has neither inline nor deferred children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0 && n.Script == ""
}

// GetChildren returns the ordered children of n. The returned slice is a
// copy; the tree itself is never modified after loading.
func GetChildren(n *Node) []*Node {
	if n == nil || len(n.Children) == 0 {
		return []*Node{}
	}
	return slices.Clone(n.Children)
}

// ParseTree builds a node from its raw entry: a two or three element array
// of label, link and an optional child slot. The child slot may be nil, a
// nested array of entries, or a string naming a deferred script.
func ParseTree(raw any) (*Node, error) {
	return parseNode(raw, "NAVTREE[0]")
}

func parseNode(raw any, path string) (*Node, error) {
	entry, ok := raw.([]any)
	if !ok {
		return nil, &ParseError{Path: path, Reason: "entry is not an array"}
	}
	if len(entry) < 2 || len(entry) > 3 {
		return nil, &ParseError{Path: path, Reason: "entry must have 2 or 3 elements"}
	}

	label, ok := entry[0].(string)
	if !ok {
		return nil, &ParseError{Path: path, Reason: "missing label"}
	}
	link, ok := entry[1].(string)
	if !ok {
		return nil, &ParseError{Path: path, Reason: "missing link"}
	}

	n := &Node{Label: label, Link: link}
	if len(entry) == 2 {
		return n, nil
	}

	switch slot := entry[2].(type) {
	case nil:
	case string:
		n.Script = slot
	case []any:
		for i, child := range slot {
			c, err := parseNode(child, entryPath(path, 2, i))
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, c)
		}
	default:
		return nil, &ParseError{Path: path, Reason: "child slot must be null, an array or a script name"}
	}
	return n, nil
}

// SkipChildren can be returned from a WalkFunc to skip the children of the
// current node without stopping the walk.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for each node in depth-first order. depth is 0 for the
// node Walk was started on.
type WalkFunc func(n *Node, depth int) error

// Walk visits root and all of its inline descendants exactly once, parents
// before children, children in order.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	err := walk(root, 0, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(n *Node, depth int, fn WalkFunc) error {
	if err := fn(n, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range n.Children {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

var errFound = errors.New("found")

// Find returns the first node in walk order for which match returns true.
func Find(root *Node, match func(*Node) bool) *Node {
	var found *Node
	_ = Walk(root, func(n *Node, _ int) error {
		if match(n) {
			found = n
			return errFound
		}
		return nil
	})
	return found
}

// FindByLink returns the first node whose link equals link.
func FindByLink(root *Node, link string) *Node {
	return Find(root, func(n *Node) bool { return n.Link == link })
}

// Breadcrumb returns the labels from root down to the first node linking to
// link, or nil when no node does.
func Breadcrumb(root *Node, link string) []string {
	var stack []string
	var trail []string
	_ = Walk(root, func(n *Node, depth int) error {
		stack = append(stack[:depth], n.Label)
		if n.Link == link {
			trail = slices.Clone(stack)
			return errFound
		}
		return nil
	})
	return trail
}

// Count returns the number of nodes reachable through inline children.
func Count(root *Node) int {
	total := 0
	_ = Walk(root, func(*Node, int) error {
		total++
		return nil
	})
	return total
}

// Scripts returns the deferred script names referenced in the tree, in
// walk order and without duplicates.
func Scripts(root *Node) []string {
	var names []string
	_ = Walk(root, func(n *Node, _ int) error {
		if n.Script != "" && !slices.Contains(names, n.Script) {
			names = append(names, n.Script)
		}
		return nil
	})
	return names
}
