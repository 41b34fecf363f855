package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/recera/sitekit/cmd/sitekit/internal/config"
)

const (
	reloadPath       = "/__sitekit/ws"
	reloadScriptPath = "/__sitekit/reload.js"
)

const reloadScript = `(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "` + reloadPath + `");
  ws.onopen = function () { ws.send(JSON.stringify({ type: "HELLO" })); };
  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    if (msg.type === "RELOAD") { location.reload(); }
    if (msg.type === "ERROR") { console.error("[sitekit] " + msg.error); }
  };
})();
`

type devServer struct {
	config     *config.Config
	watcher    *fsnotify.Watcher
	wsClients  map[*websocket.Conn]bool
	wsMutex    sync.RWMutex
	upgrader   websocket.Upgrader
	buildMutex sync.Mutex
	noBuild    bool
}

func newDevCommand() *cobra.Command {
	var port int
	var host string
	var noBuild bool

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long:  `Serves the public directory, rebuilds the client on Go changes and reloads connected browsers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				log.Printf("⚠️  Failed to load %s: %v (using defaults)\n", config.FileName, err)
				cfg = config.DefaultConfig()
			}
			if port != 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runDev(cfg, noBuild)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the dev server on")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind the dev server to")
	cmd.Flags().BoolVar(&noBuild, "no-build", false, "Serve and reload without compiling the client")

	return cmd
}

func newDevServer(cfg *config.Config) *devServer {
	return &devServer{
		config:    cfg,
		wsClients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins in dev mode
				return true
			},
		},
	}
}

func runDev(cfg *config.Config, noBuild bool) error {
	server := newDevServer(cfg)
	server.noBuild = noBuild

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	server.watcher = watcher

	if err := server.setupWatcher(); err != nil {
		return fmt.Errorf("failed to set up file watcher: %w", err)
	}

	if !noBuild {
		if err := server.rebuild(); err != nil {
			log.Printf("❌ Initial build failed: %v", err)
		}
	}

	go server.watchFiles()

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🌐 Dev server running at http://%s", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("👋 Shutting down dev server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s *devServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(reloadPath, s.handleWebSocket)
	mux.HandleFunc(reloadScriptPath, s.serveReloadScript)
	mux.HandleFunc("/", s.serveStatic)
	return mux
}

func (s *devServer) setupWatcher() error {
	for _, dir := range s.config.Watch.Dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return nil
			}
			// Skip hidden directories and node_modules
			if path != dir && (strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules") {
				return filepath.SkipDir
			}
			return s.watcher.Add(path)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *devServer) watchFiles() {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pending []fsnotify.Event

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !s.isRelevantFile(event.Name) {
				continue
			}
			pending = append(pending, event)
			debounce.Reset(s.config.Watch.Debounce)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Println("Watcher error:", err)

		case <-debounce.C:
			events := pending
			pending = nil
			if len(events) > 0 {
				s.handleFileChanges(events)
			}
		}
	}
}

// isRelevantFile reports whether a change to path should reload browsers.
// Build outputs are ignored so a rebuild does not trigger itself.
func (s *devServer) isRelevantFile(path string) bool {
	clean := filepath.Clean(path)
	if clean == filepath.Clean(s.config.WasmPath()) || clean == filepath.Clean(s.config.WasmExecPath()) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range s.config.Watch.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

func (s *devServer) handleFileChanges(events []fsnotify.Event) {
	hasGoChanges := false
	for _, event := range events {
		if strings.ToLower(filepath.Ext(event.Name)) == ".go" {
			hasGoChanges = true
			break
		}
	}

	if hasGoChanges && !s.noBuild {
		if err := s.rebuild(); err != nil {
			log.Printf("❌ Build failed: %v", err)
			s.notifyClients("error", map[string]interface{}{"error": err.Error()})
			return
		}
	}

	log.Printf("🔄 %d file(s) changed, reloading", len(events))
	s.notifyClients("reload", nil)
}

func (s *devServer) rebuild() error {
	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()

	return runBuild(context.Background(), s.config)
}

func (s *devServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg["type"] {
		case "HELLO":
			s.wsMutex.Lock()
			err := conn.WriteJSON(map[string]interface{}{"type": "ACK"})
			s.wsMutex.Unlock()
			if err != nil {
				return
			}
		default:
			log.Printf("Unknown WebSocket message type: %v", msg["type"])
		}
	}
}

func (s *devServer) notifyClients(msgType string, data map[string]interface{}) {
	// gorilla connections allow one concurrent writer
	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()

	message := map[string]interface{}{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("Failed to send message to client: %v", err)
		}
	}
}

func (s *devServer) clientCount() int {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()
	return len(s.wsClients)
}

func (s *devServer) serveReloadScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(reloadScript))
}

func (s *devServer) serveStatic(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if strings.HasSuffix(path, "/") {
		path += "index.html"
	}

	// Security: prevent directory traversal
	if strings.Contains(path, "..") {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(s.config.Build.PublicDir, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	content, err := os.ReadFile(filePath)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	switch filepath.Ext(filePath) {
	case ".html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		content = injectReload(content)
	case ".js":
		w.Header().Set("Content-Type", "application/javascript")
	case ".css":
		w.Header().Set("Content-Type", "text/css")
	case ".wasm":
		w.Header().Set("Content-Type", "application/wasm")
	}

	w.Header().Set("Cache-Control", "no-cache")
	w.Write(content)
}

// injectReload adds the reload client before </body>, or appends it when the
// page has no closing body tag.
func injectReload(page []byte) []byte {
	tag := `<script src="` + reloadScriptPath + `"></script>`
	lower := strings.ToLower(string(page))
	i := strings.LastIndex(lower, "</body>")
	if i < 0 {
		return append(page, []byte(tag)...)
	}
	out := make([]byte, 0, len(page)+len(tag))
	out = append(out, page[:i]...)
	out = append(out, tag...)
	out = append(out, page[i:]...)
	return out
}
