package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/recera/sitekit/cmd/sitekit/internal/config"
)

type starterData struct {
	Title string
	Wasm  string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/styles.css">
  <script src="/wasm_exec.js"></script>
  <script>
    const go = new Go();
    WebAssembly.instantiateStreaming(fetch("/{{.Wasm}}"), go.importObject)
      .then((result) => go.run(result.instance));
  </script>
</head>
<body>
  <div class="preloader"><span class="spinner"></span></div>
  <div class="scroll-progress"></div>

  <nav class="navbar">
    <a class="brand" href="#home">{{.Title}}</a>
    <ul class="nav-menu">
      <li><a href="#features">Features</a></li>
      <li><a href="#stats">Numbers</a></li>
      <li><a href="#contact">Contact</a></li>
    </ul>
    <button class="theme-toggle" data-theme-toggle aria-label="Toggle theme">◐</button>
    <button class="hamburger" aria-label="Menu">☰</button>
  </nav>

  <section id="home" class="hero-slider">
    <div class="slide"><h1>Build something people love</h1></div>
    <div class="slide"><h1>Ship it faster</h1></div>
    <div class="slide"><h1>Measure what matters</h1></div>
    <div class="slider-dots"></div>
  </section>

  <section id="features">
    <article class="feature animate-on-scroll"><h2>Fast</h2><p>Pages stay static and light.</p></article>
    <article class="feature animate-on-scroll"><h2>Themed</h2><p>Light and dark out of the box.</p></article>
    <article class="feature animate-on-scroll"><h2>Alive</h2><p>Sliders, counters and reveals.</p></article>
  </section>

  <section id="stats">
    <div class="stat"><span data-counter="2500" data-suffix="+">0</span> customers</div>
    <div class="stat"><span data-counter="99" data-suffix="%">0</span> uptime</div>
    <div class="stat"><span data-counter="24" data-duration="1200">0</span> countries</div>
  </section>

  <section id="contact">
    <form data-contact-form>
      <input name="name" placeholder="Name" required>
      <input name="email" type="email" placeholder="Email" required>
      <textarea name="message" placeholder="Message"></textarea>
      <button type="submit">Send</button>
      <div data-form-success style="display: none">Thanks! We will be in touch.</div>
    </form>
  </section>
</body>
</html>
`))

const starterStyles = `:root {
  --bg: #ffffff;
  --fg: #1a1a2e;
  --accent: #4f46e5;
}

[data-theme="dark"] {
  --bg: #0f0f1a;
  --fg: #e6e6f0;
  --accent: #818cf8;
}

body { margin: 0; background: var(--bg); color: var(--fg); font-family: system-ui, sans-serif; }

.preloader { position: fixed; inset: 0; background: var(--bg); transition: opacity 0.6s; z-index: 100; }
.scroll-progress { position: fixed; top: 0; left: 0; height: 3px; width: 0; background: var(--accent); z-index: 50; }

.navbar { position: sticky; top: 0; display: flex; align-items: center; gap: 1rem; padding: 1rem 2rem; }
.navbar.is-scrolled { box-shadow: 0 2px 12px rgba(0, 0, 0, 0.12); }
.nav-menu { display: flex; gap: 1rem; list-style: none; }
.hamburger { display: none; }

@media (max-width: 720px) {
  .hamburger { display: block; }
  .nav-menu { display: none; }
  .nav-menu.active { display: flex; flex-direction: column; }
}

.hero-slider { position: relative; min-height: 60vh; }
.slide { position: absolute; inset: 0; opacity: 0; transition: opacity 0.8s; }
.slide.active { opacity: 1; }
.slider-dot { width: 10px; height: 10px; border-radius: 50%; border: 0; background: #ccc; }
.slider-dot.active { background: var(--accent); }

.animate-on-scroll { opacity: 0; transform: translateY(24px); transition: all 0.6s; }
.animate-on-scroll.visible { opacity: 1; transform: none; }

@media (prefers-reduced-motion: reduce) {
  .animate-on-scroll, .slide, .preloader { transition: none; }
}
`

const starterClient = `//go:build js && wasm

package main

import (
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/scheduler"
	"github.com/recera/sitekit/pkg/site"
)

func main() {
	site.New(dom.Browser(), scheduler.NewBrowser(), site.Options{}).Mount()
	select {}
}
`

func newInitCommand() *cobra.Command {
	var title string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter site",
		Long:  `Writes a landing page, stylesheet, client entry point and sitekit.yaml into the directory.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if title == "" {
				title = defaultTitle(dir)
			}
			files, err := writeStarter(dir, title, force)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Println("  created", f)
			}
			fmt.Printf("\n✨ Site ready. Run `sitekit dev` in %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Page title (defaults to the directory name)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func defaultTitle(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "My Site"
	}
	name := filepath.Base(abs)
	if name == "" || name == string(filepath.Separator) || name == "." {
		return "My Site"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// writeStarter creates the starter files under dir and returns their paths
// relative to dir.
func writeStarter(dir, title string, force bool) ([]string, error) {
	cfg := config.DefaultConfig()

	var index strings.Builder
	if err := indexTemplate.Execute(&index, starterData{Title: title, Wasm: cfg.Build.Wasm}); err != nil {
		return nil, fmt.Errorf("failed to render index.html: %w", err)
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(cfg.Build.PublicDir, "index.html"), index.String()},
		{filepath.Join(cfg.Build.PublicDir, "styles.css"), starterStyles},
		{filepath.Join(filepath.FromSlash(strings.TrimPrefix(cfg.Build.Entry, "./")), "main.go"), starterClient},
	}

	if !force {
		for _, f := range append(files, struct{ path, content string }{config.FileName, ""}) {
			if _, err := os.Stat(filepath.Join(dir, f.path)); err == nil {
				return nil, fmt.Errorf("%s already exists (use --force to overwrite)", f.path)
			}
		}
	}

	var created []string
	for _, f := range files {
		full := filepath.Join(dir, f.path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(f.path), err)
		}
		if err := os.WriteFile(full, []byte(f.content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		created = append(created, f.path)
	}

	if err := config.Save(cfg, dir); err != nil {
		return nil, err
	}
	created = append(created, config.FileName)

	return created, nil
}
