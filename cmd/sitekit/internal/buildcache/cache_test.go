package buildcache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_GetPut(t *testing.T) {
	c, err := New(Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache should miss")
	}

	data := []byte("\x00asm wasm bytes")
	if err := c.Put("k1", data); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := c.Get("k1")
	if !ok || !bytes.Equal(got, data) {
		t.Fatalf("Get() = %q, %v", got, ok)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Entries != 1 || stats.TotalSize != int64(len(data)) {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestCache_Persistence(t *testing.T) {
	dir := t.TempDir()

	c1, err := New(Config{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := c1.Put("build", []byte("binary")); err != nil {
		t.Fatal(err)
	}

	c2, err := New(Config{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	got, ok := c2.Get("build")
	if !ok || string(got) != "binary" {
		t.Errorf("reopened Get() = %q, %v", got, ok)
	}
	if c2.Stats().TotalSize != 6 {
		t.Errorf("reopened TotalSize = %d, want 6", c2.Stats().TotalSize)
	}
}

func TestCache_CorruptIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, indexFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := New(Config{Dir: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Stats().Entries != 0 {
		t.Error("corrupt index should start empty")
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := New(Config{Dir: t.TempDir(), MaxSize: 10})
	if err != nil {
		t.Fatal(err)
	}

	c.Put("a", []byte("aaaa"))
	time.Sleep(5 * time.Millisecond)
	c.Put("b", []byte("bbbb"))
	time.Sleep(5 * time.Millisecond)
	c.Get("a") // a is now newer than b
	time.Sleep(5 * time.Millisecond)
	c.Put("c", []byte("cccc"))

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should be present")
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}
}

func TestCache_MissingFile(t *testing.T) {
	dir := t.TempDir()
	c, err := New(Config{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("k", []byte("data"))
	os.Remove(filepath.Join(dir, sanitizeKey("k")+".bin"))

	if _, ok := c.Get("k"); ok {
		t.Error("Get() should miss when the artifact file is gone")
	}
	if c.Stats().Entries != 0 {
		t.Error("entry should be dropped")
	}
}

func TestCache_Clear(t *testing.T) {
	c, err := New(Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if s := c.Stats(); s.Entries != 0 || s.TotalSize != 0 {
		t.Errorf("after Clear() Stats() = %+v", s)
	}
}

func TestSourceKey(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		t.Helper()
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	key := func(settings ...string) string {
		t.Helper()
		k, err := SourceKey(root, settings...)
		if err != nil {
			t.Fatalf("SourceKey() error = %v", err)
		}
		return k
	}

	write("go.mod", "module example.com/site\n")
	write("app/client/main.go", "package main\n")
	base := key("-s -w")

	if key("-s -w") != base {
		t.Error("SourceKey() is not stable")
	}
	if key("") == base {
		t.Error("settings should change the key")
	}

	write("app/client/main_test.go", "package main\n")
	write("_examples/x.go", "package x\n")
	write(".git/hook.go", "package hook\n")
	write("README.md", "docs")
	if key("-s -w") != base {
		t.Error("tests, hidden and underscore dirs, and non-Go files should not change the key")
	}

	write("app/client/main.go", "package main\n\nfunc main() {}\n")
	if key("-s -w") == base {
		t.Error("editing a source should change the key")
	}
}

func TestKey(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("Key() should separate its inputs")
	}
	if Key("x") != Key("x") {
		t.Error("Key() is not deterministic")
	}
}
