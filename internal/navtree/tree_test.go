package navtree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTreeSingleChild(t *testing.T) {
	root, err := ParseTree([]any{"Root", "index.html", []any{
		[]any{"Topics", "topics.html", nil},
	}})
	if err != nil {
		t.Fatalf("ParseTree: %v", err)
	}

	children := GetChildren(root)
	if len(children) != 1 {
		t.Fatalf("children = %d, want 1", len(children))
	}
	if children[0].Label != "Topics" || children[0].Link != "topics.html" {
		t.Errorf("child = %q/%q, want Topics/topics.html", children[0].Label, children[0].Link)
	}
	if got := GetChildren(children[0]); len(got) != 0 || got == nil {
		t.Errorf("leaf children = %#v, want empty slice", got)
	}
}

func TestGetChildrenReturnsCopy(t *testing.T) {
	root := &Node{Label: "R", Children: []*Node{{Label: "a"}, {Label: "b"}}}
	got := GetChildren(root)
	got[0] = &Node{Label: "changed"}
	if root.Children[0].Label != "a" {
		t.Error("modifying the returned slice changed the tree")
	}
}

func TestWalkVisitsEveryNodeOnceInOrder(t *testing.T) {
	_, doc := loadSample(t)

	seen := make(map[*Node]int)
	var labels []string
	var depths []int
	err := Walk(doc.Root, func(n *Node, depth int) error {
		seen[n]++
		labels = append(labels, n.Label)
		depths = append(depths, depth)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	for n, c := range seen {
		if c != 1 {
			t.Errorf("%s visited %d times", n.Label, c)
		}
	}
	if len(labels) != Count(doc.Root) {
		t.Errorf("visited %d nodes, want %d", len(labels), Count(doc.Root))
	}

	wantPrefix := []string{
		"Examen", "General Description", "Hardware Connection", "Changelog", "Template", "Topics",
		"Estructuras de datos", "Estructuras de datos", "Índice de estructuras de datos",
		"Campos de datos", "Todos", "Variables", "Archivos",
	}
	if diff := cmp.Diff(wantPrefix, labels[:len(wantPrefix)]); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
	if depths[0] != 0 || depths[1] != 1 || depths[10] != 3 {
		t.Errorf("unexpected depths %v", depths)
	}
}

func TestWalkSkipChildrenAndStop(t *testing.T) {
	_, doc := loadSample(t)

	var labels []string
	err := Walk(doc.Root, func(n *Node, depth int) error {
		labels = append(labels, n.Label)
		if depth == 1 {
			return SkipChildren
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(labels) != 8 {
		t.Errorf("visited %d nodes with SkipChildren, want 8", len(labels))
	}

	stop := errors.New("stop")
	visited := 0
	err = Walk(doc.Root, func(*Node, int) error {
		visited++
		if visited == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || visited != 3 {
		t.Errorf("Walk = %v after %d visits, want stop after 3", err, visited)
	}
}

func TestFindAndBreadcrumb(t *testing.T) {
	_, doc := loadSample(t)

	n := FindByLink(doc.Root, "functions_vars.html")
	if n == nil || n.Label != "Variables" {
		t.Fatalf("FindByLink = %+v", n)
	}
	if FindByLink(doc.Root, "missing.html") != nil {
		t.Error("FindByLink should return nil for unknown links")
	}

	want := []string{"Examen", "Estructuras de datos", "Campos de datos", "Variables"}
	if diff := cmp.Diff(want, Breadcrumb(doc.Root, "functions_vars.html")); diff != "" {
		t.Errorf("breadcrumb mismatch (-want +got):\n%s", diff)
	}
	if Breadcrumb(doc.Root, "missing.html") != nil {
		t.Error("Breadcrumb should be nil for unknown links")
	}
}

func TestScripts(t *testing.T) {
	_, doc := loadSample(t)
	want := []string{
		"topics", "annotated_dup", "files_dup",
		"globals_dup", "globals_func", "globals_eval", "globals_defs",
	}
	if diff := cmp.Diff(want, Scripts(doc.Root)); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
}
