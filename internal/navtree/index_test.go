package navtree

import (
	"errors"
	"testing"
)

func TestIndexGet(t *testing.T) {
	idx := NewIndex([]string{"a.html", "b.html"})

	for i := 0; i < 3; i++ {
		if got, err := idx.Get(0); err != nil || got != "a.html" {
			t.Fatalf("Get(0) = %q, %v; want a.html", got, err)
		}
		if got, err := idx.Get(1); err != nil || got != "b.html" {
			t.Fatalf("Get(1) = %q, %v; want b.html", got, err)
		}
	}
}

func TestIndexGetOutOfRange(t *testing.T) {
	idx := NewIndex([]string{"a.html", "b.html"})

	for _, pos := range []int{-1, idx.Len(), 100} {
		_, err := idx.Get(pos)
		var oe *OutOfRangeError
		if !errors.As(err, &oe) {
			t.Fatalf("Get(%d): expected OutOfRangeError, got %v", pos, err)
		}
		if oe.Position != pos || oe.Length != 2 {
			t.Errorf("Get(%d): error = %+v", pos, oe)
		}
	}

	var empty Index
	if _, err := empty.Get(0); err == nil {
		t.Error("Get(0) on an empty index should fail")
	}
}

func TestNewIndexCopies(t *testing.T) {
	src := []string{"a.html"}
	idx := NewIndex(src)
	src[0] = "changed.html"
	if got, _ := idx.Get(0); got != "a.html" {
		t.Errorf("index aliases its input: got %q", got)
	}
	entries := idx.Entries()
	entries[0] = "changed.html"
	if got, _ := idx.Get(0); got != "a.html" {
		t.Errorf("Entries aliases the index: got %q", got)
	}
}

func TestIndexPageFor(t *testing.T) {
	_, doc := loadSample(t)

	tests := []struct {
		url  string
		want int
	}{
		{"_c_make_c_compiler_id_8c.html", 0},
		{"Zeta.html", 0},
		{"globals.html", 0},
		{"globals_defs.html", 1},
		{"group___b_l_e.html", 1},
		{"group___m_p_u6050.html#gab", 5},
		{"spi__mcu_8c.html#a44572ba7fd2411e129e231e167dffbab", 7},
		{"zzz.html", 7},
	}
	for _, tt := range tests {
		if got := doc.Index.PageFor(tt.url); got != tt.want {
			t.Errorf("PageFor(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}

	if got := (Index{}).PageFor("a.html"); got != 0 {
		t.Errorf("PageFor on empty index = %d, want 0", got)
	}
}

func TestIndexScriptName(t *testing.T) {
	idx := NewIndex([]string{"a.html", "b.html"})
	if got, err := idx.ScriptName(1); err != nil || got != "navtreeindex1" {
		t.Errorf("ScriptName(1) = %q, %v", got, err)
	}
	if _, err := idx.ScriptName(2); err == nil {
		t.Error("ScriptName(2) should fail")
	}
}

func TestStringsGet(t *testing.T) {
	s := Strings{SyncOn: "click to disable", SyncOff: "click to enable"}

	if got, err := s.Get(SyncOn); err != nil || got != "click to disable" {
		t.Errorf("Get(SyncOn) = %q, %v", got, err)
	}
	if got, err := s.Get(SyncOff); err != nil || got != "click to enable" {
		t.Errorf("Get(SyncOff) = %q, %v", got, err)
	}

	_, err := s.Get(Key(42))
	var ue *UnknownKeyError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnknownKeyError, got %v", err)
	}
	if ue.Key != "Key(42)" {
		t.Errorf("error key = %q", ue.Key)
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"sync-on", SyncOn},
		{"SYNCONMSG", SyncOn},
		{" SyncOff ", SyncOff},
		{"syncoffmsg", SyncOff},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseKey(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	_, err := ParseKey("sync")
	var ue *UnknownKeyError
	if !errors.As(err, &ue) || ue.Key != "sync" {
		t.Errorf("ParseKey(sync) error = %v", err)
	}
}
