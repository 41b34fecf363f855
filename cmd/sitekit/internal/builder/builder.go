// Package builder compiles the client package to WebAssembly and stages the
// browser support script next to it.
package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Options describes one wasm build
type Options struct {
	Entry    string
	Output   string
	Tags     []string
	LDFlags  string
	WasmExec string // explicit wasm_exec.js, resolved from GOROOT when empty
	ExecDest string // where wasm_exec.js is copied
}

// Result reports what a build produced
type Result struct {
	Output string
	Size   int64
}

// Args returns the go build arguments for opts
func Args(opts Options) []string {
	args := []string{"build", "-o", opts.Output}
	if len(opts.Tags) > 0 {
		args = append(args, "-tags", strings.Join(opts.Tags, ","))
	}
	if opts.LDFlags != "" {
		args = append(args, "-ldflags", opts.LDFlags)
	}
	return append(args, opts.Entry)
}

// Build runs go build for js/wasm and copies wasm_exec.js
func Build(ctx context.Context, opts Options) (*Result, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Output), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "go", Args(opts)...)
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("go build failed: %w\n%s", err, strings.TrimSpace(out.String()))
	}

	info, err := os.Stat(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("build produced no output: %w", err)
	}

	if err := StageWasmExec(ctx, opts); err != nil {
		return nil, err
	}

	return &Result{Output: opts.Output, Size: info.Size()}, nil
}

// StageWasmExec copies wasm_exec.js to opts.ExecDest. It does nothing when
// ExecDest is empty.
func StageWasmExec(ctx context.Context, opts Options) error {
	if opts.ExecDest == "" {
		return nil
	}
	src := opts.WasmExec
	if src == "" {
		var err error
		if src, err = FindWasmExec(ctx); err != nil {
			return err
		}
	}
	if err := CopyFile(src, opts.ExecDest); err != nil {
		return fmt.Errorf("failed to copy wasm_exec.js: %w", err)
	}
	return nil
}

// ErrNoWasmExec is returned when GOROOT has no wasm_exec.js
var ErrNoWasmExec = errors.New("wasm_exec.js not found in GOROOT")

// FindWasmExec locates wasm_exec.js under `go env GOROOT`
func FindWasmExec(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return "", fmt.Errorf("go env GOROOT: %w", err)
	}
	return FindWasmExecIn(strings.TrimSpace(string(out)))
}

// FindWasmExecIn looks in the locations used by current (lib/wasm) and older
// (misc/wasm) toolchains
func FindWasmExecIn(goroot string) (string, error) {
	for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
		p := filepath.Join(goroot, filepath.FromSlash(rel))
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (GOROOT=%s)", ErrNoWasmExec, goroot)
}

// CopyFile copies src to dst, creating dst's directory
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
