package builder

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestArgs(t *testing.T) {
	got := Args(Options{
		Entry:   "./app/client",
		Output:  "public/app.wasm",
		Tags:    []string{"prod", "nodebug"},
		LDFlags: "-s -w",
	})
	want := []string{"build", "-o", "public/app.wasm", "-tags", "prod,nodebug", "-ldflags", "-s -w", "./app/client"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %q\nwant %q", got, want)
	}

	minimal := Args(Options{Entry: ".", Output: "a.wasm"})
	if !reflect.DeepEqual(minimal, []string{"build", "-o", "a.wasm", "."}) {
		t.Errorf("Args() = %q", minimal)
	}
}

func TestFindWasmExecIn(t *testing.T) {
	goroot := t.TempDir()

	if _, err := FindWasmExecIn(goroot); !errors.Is(err, ErrNoWasmExec) {
		t.Fatalf("Expected ErrNoWasmExec, got %v", err)
	}

	old := filepath.Join(goroot, "misc", "wasm", "wasm_exec.js")
	writeFile(t, old, "old")
	if got, err := FindWasmExecIn(goroot); err != nil || got != old {
		t.Errorf("FindWasmExecIn() = %q, %v", got, err)
	}

	current := filepath.Join(goroot, "lib", "wasm", "wasm_exec.js")
	writeFile(t, current, "new")
	if got, err := FindWasmExecIn(goroot); err != nil || got != current {
		t.Errorf("lib/wasm should win, got %q, %v", got, err)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.js")
	dst := filepath.Join(dir, "public", "nested", "wasm_exec.js")
	writeFile(t, src, "globalThis.Go = class {}")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "globalThis.Go = class {}" {
		t.Errorf("Copied %q", got)
	}

	if err := CopyFile(filepath.Join(dir, "missing"), dst); err == nil {
		t.Error("Expected error for missing source")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
