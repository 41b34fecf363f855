package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/recera/sitekit/cmd/sitekit/internal/buildcache"
	"github.com/recera/sitekit/cmd/sitekit/internal/builder"
	"github.com/recera/sitekit/cmd/sitekit/internal/config"
	"github.com/recera/sitekit/cmd/sitekit/internal/ui"
)

func newBuildCommand() *cobra.Command {
	var output string
	var entry string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the site client to WebAssembly",
		Long:  `Builds the client package for js/wasm into the public directory and copies wasm_exec.js next to it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Build.PublicDir = output
			}
			if entry != "" {
				cfg.Build.Entry = entry
			}
			if noCache {
				cfg.Build.Cache = "off"
			}
			return runBuild(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Public directory (overrides sitekit.yaml)")
	cmd.Flags().StringVar(&entry, "entry", "", "Client package to compile (overrides sitekit.yaml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Always run the compiler")

	return cmd
}

func buildOptions(cfg *config.Config) builder.Options {
	return builder.Options{
		Entry:    cfg.Build.Entry,
		Output:   cfg.WasmPath(),
		Tags:     cfg.Build.Tags,
		LDFlags:  cfg.Build.LDFlags,
		WasmExec: cfg.Build.WasmExec,
		ExecDest: cfg.WasmExecPath(),
	}
}

func runBuild(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log.Printf("🚀 Building %s from %s", cfg.WasmPath(), cfg.Build.Entry)

	opts := buildOptions(cfg)
	return ui.RunTask("Building "+cfg.Build.Wasm, func() (string, error) {
		if !cfg.CacheEnabled() {
			res, err := builder.Build(ctx, opts)
			if err != nil {
				return "", err
			}
			return formatSize(res.Size), nil
		}
		return cachedBuild(ctx, cfg.Build.Cache, ".", opts)
	})
}

// cachedBuild reuses a previous binary when nothing under root that feeds the
// build has changed
func cachedBuild(ctx context.Context, dir, root string, opts builder.Options) (string, error) {
	c, err := buildcache.New(buildcache.Config{Dir: dir, MaxSize: buildcache.DefaultMaxSize})
	if err != nil {
		return "", err
	}

	key, err := buildcache.SourceKey(root, builder.Args(opts)...)
	if err != nil {
		return "", err
	}

	if data, ok := c.Get(key); ok {
		if err := os.MkdirAll(filepath.Dir(opts.Output), 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(opts.Output, data, 0644); err != nil {
			return "", fmt.Errorf("failed to restore cached build: %w", err)
		}
		if err := builder.StageWasmExec(ctx, opts); err != nil {
			return "", err
		}
		return formatSize(int64(len(data))) + " (cached)", nil
	}

	res, err := builder.Build(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(res.Output)
	if err != nil {
		return "", err
	}
	if err := c.Put(key, data); err != nil {
		log.Printf("⚠️  Failed to cache build: %v", err)
	}
	return formatSize(res.Size), nil
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
