package navtree

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalRoundTrip(t *testing.T) {
	_, doc := loadSample(t)

	for _, f := range []Format{FormatJS, FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(doc, f)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			back, err := Unmarshal(data, f)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if diff := cmp.Diff(doc, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalJSONShape(t *testing.T) {
	doc := &Document{
		Root:    &Node{Label: "R", Link: "index.html", Children: []*Node{{Label: "T", Link: "t.html", Script: "t"}}},
		Index:   NewIndex([]string{"a.html"}),
		Strings: Strings{SyncOn: "on", SyncOff: "off"},
	}
	data, err := Marshal(doc, FormatJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"index": [`, `"a.html"`, `"script": "t"`, `"sync_on": "on"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("json output missing %s:\n%s", want, data)
		}
	}
}

func TestUnmarshalJSONMissingFields(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing label", `{"root": {"link": "a.html"}}`},
		{"missing link", `{"root": {"label": "A"}}`},
		{"nested", `{"root": {"label": "A", "link": "a.html", "children": [{"label": "B"}]}}`},
		{"both forms", `{"root": {"label": "A", "link": "a.html", "script": "s", "children": [{"label": "B", "link": "b"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data), FormatJSON)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("expected ParseError, got %v", err)
			}
		})
	}

	_, err := Unmarshal([]byte(`{"index": []}`), FormatJSON)
	var me *MalformedInputError
	if !errors.As(err, &me) {
		t.Errorf("missing root: expected MalformedInputError, got %v", err)
	}
}

func TestUnmarshalHeader(t *testing.T) {
	const root = `"root": {"label": "A", "link": "a.html"}`
	tests := []struct {
		name   string
		header string
		ok     bool
	}{
		{"none", ``, true},
		{"comment", `/* license */`, true},
		{"multi line", `/*\n @licstart\n @licend\n*/`, true},
		{"plain text", `a license`, false},
		{"unterminated", `/* license`, false},
		{"two comments", `/* a */ /* b */`, false},
		{"trailing code", `/* a */ var x = 1;`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := fmt.Sprintf(`{"header": %q, %s, "strings": {"sync_on": "on", "sync_off": "off"}}`, tt.header, root)
			doc, err := Unmarshal([]byte(data), FormatJSON)
			if !tt.ok {
				var me *MalformedInputError
				if !errors.As(err, &me) {
					t.Fatalf("expected MalformedInputError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			again, err := Load(Encode(doc))
			if err != nil {
				t.Fatalf("Load(Encode): %v", err)
			}
			if again.Header != tt.header {
				t.Errorf("header = %q, want %q", again.Header, tt.header)
			}
		})
	}
}

func TestUnmarshalEmptyChildrenNormalised(t *testing.T) {
	doc, err := Unmarshal([]byte("root:\n  label: A\n  link: a.html\n  children: []\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Root.Children != nil || !doc.Root.IsLeaf() {
		t.Errorf("empty children should normalise to a leaf, got %#v", doc.Root)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"js": FormatJS, "YML": FormatYAML, "md": FormatMarkdown, "html": FormatHTML} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestOutlineRoundTrip(t *testing.T) {
	_, doc := loadSample(t)

	md := WriteOutline(doc.Root)
	if !strings.HasPrefix(md, "- [Examen](index.html)\n  - [General Description](index.html#genDesc)\n") {
		t.Errorf("unexpected outline start:\n%s", md)
	}
	if !strings.Contains(md, `  - [Topics](topics.html "topics")`) {
		t.Errorf("outline missing deferred script title:\n%s", md)
	}

	root, err := ParseOutline([]byte(md))
	if err != nil {
		t.Fatalf("ParseOutline: %v", err)
	}
	if diff := cmp.Diff(doc.Root, root); diff != "" {
		t.Errorf("outline round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestOutlineRoundTripPunctuation(t *testing.T) {
	labels := []string{
		"__attribute__",
		"*ptr*",
		"a `b`",
		"x <y>",
		"AT&amp;T",
		"![img](x.png)",
		`C:\path\[0]`,
		"~tilde~ & ok",
	}
	root := &Node{Label: "Root", Link: "index.html"}
	for i, l := range labels {
		root.Children = append(root.Children, &Node{Label: l, Link: fmt.Sprintf("p%d.html", i)})
	}

	got, err := ParseOutline([]byte(WriteOutline(root)))
	if err != nil {
		t.Fatalf("ParseOutline: %v", err)
	}
	if diff := cmp.Diff(root, got); diff != "" {
		t.Errorf("outline round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOutlineInlineMarkup(t *testing.T) {
	src := "- [Root](index.html)\n" +
		"  - [call `foo()`](foo.html)\n" +
		"  - [vector<b>int</b>](vec.html)\n" +
		"  - [Tom &amp; Jerry &#33;](tj.html)\n"
	root, err := ParseOutline([]byte(src))
	if err != nil {
		t.Fatalf("ParseOutline: %v", err)
	}
	var got []string
	for _, c := range root.Children {
		got = append(got, c.Label)
	}
	want := []string{"call `foo()`", "vector<b>int</b>", "Tom & Jerry !"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOutlineErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantParse bool
	}{
		{"no list", "# Title\n\nSome text.\n", false},
		{"two roots", "- [A](a.html)\n- [B](b.html)\n", false},
		{"item without link", "- [A](a.html)\n  - plain text\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOutline([]byte(tt.src))
			var pe *ParseError
			var me *MalformedInputError
			switch {
			case tt.wantParse && !errors.As(err, &pe):
				t.Errorf("expected ParseError, got %v", err)
			case !tt.wantParse && !errors.As(err, &me):
				t.Errorf("expected MalformedInputError, got %v", err)
			}
		})
	}
}

func TestRenderHTML(t *testing.T) {
	_, doc := loadSample(t)

	out := RenderHTML(doc.Root, "functions_vars.html", "../")
	if !strings.Contains(out, `<li class="file"><a href="../functions_vars.html" class="active">Variables</a></li>`) {
		t.Errorf("active entry not rendered:\n%s", out)
	}
	if !strings.Contains(out, `<li class="dir expanded"><a href="../functions.html">Campos de datos</a>`) {
		t.Errorf("ancestor not expanded:\n%s", out)
	}
	if strings.Contains(out, `<li class="dir expanded"><a href="../files.html">`) {
		t.Error("unrelated directory expanded")
	}
	if !strings.Contains(out, `data-script="topics"`) {
		t.Error("deferred node not marked")
	}

	escaped := RenderHTML(&Node{Label: "<b>", Link: "a.html?x=1&y=2"}, "", "")
	if !strings.Contains(escaped, "&lt;b&gt;") || !strings.Contains(escaped, "x=1&amp;y=2") {
		t.Errorf("output not escaped: %s", escaped)
	}
}
