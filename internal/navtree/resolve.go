package navtree

import (
	"fmt"
	"io/fs"
	"slices"
)

// Resolve returns a copy of doc in which every deferred child script is read
// from fsys (as <name>.js) and inlined. doc itself is left untouched.
func Resolve(fsys fs.FS, doc *Document) (*Document, error) {
	r := &resolver{fsys: fsys, cache: make(map[string][]*Node)}
	root, err := r.node(doc.Root, nil)
	if err != nil {
		return nil, err
	}
	out := *doc
	out.Root = root
	out.Index = NewIndex(doc.Index.entries)
	return &out, nil
}

type resolver struct {
	fsys  fs.FS
	cache map[string][]*Node
}

func (r *resolver) node(n *Node, active []string) (*Node, error) {
	if n == nil {
		return nil, nil
	}
	out := &Node{Label: n.Label, Link: n.Link}

	children := n.Children
	if n.Script != "" {
		if slices.Contains(active, n.Script) {
			return nil, fmt.Errorf("resolving %s: script cycle %v", n.Script, append(active, n.Script))
		}
		loaded, err := r.load(n.Script)
		if err != nil {
			return nil, err
		}
		children = loaded
		active = append(slices.Clone(active), n.Script)
	}

	for _, c := range children {
		rc, err := r.node(c, active)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, rc)
	}
	return out, nil
}

func (r *resolver) load(name string) ([]*Node, error) {
	if nodes, ok := r.cache[name]; ok {
		return nodes, nil
	}
	src, err := fs.ReadFile(r.fsys, name+".js")
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", name, err)
	}
	nodes, err := LoadScript(name, src)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", name, err)
	}
	r.cache[name] = nodes
	return nodes, nil
}
