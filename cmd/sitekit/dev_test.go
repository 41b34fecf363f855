package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/recera/sitekit/cmd/sitekit/internal/config"
)

func TestInjectReload(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "before closing body",
			page: "<html><body><p>hi</p></body></html>",
			want: `<html><body><p>hi</p><script src="/__sitekit/reload.js"></script></body></html>`,
		},
		{
			name: "uppercase body",
			page: "<BODY>x</BODY>",
			want: `<BODY>x<script src="/__sitekit/reload.js"></script></BODY>`,
		},
		{
			name: "no body tag",
			page: "<p>fragment</p>",
			want: `<p>fragment</p><script src="/__sitekit/reload.js"></script>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(injectReload([]byte(tt.page))); got != tt.want {
				t.Errorf("injectReload() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRelevantFile(t *testing.T) {
	s := newDevServer(config.DefaultConfig())

	tests := []struct {
		path string
		want bool
	}{
		{"app/client/main.go", true},
		{"public/index.html", true},
		{"public/STYLES.CSS", true},
		{"README.md", false},
		{"public/app.wasm", false},
		{"public/wasm_exec.js", false},
		{"public/site.js", true},
	}

	for _, tt := range tests {
		if got := s.isRelevantFile(tt.path); got != tt.want {
			t.Errorf("isRelevantFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func newTestDevServer(t *testing.T) (*devServer, *httptest.Server) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><body>home</body></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles.css"), []byte("body{}"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Build.PublicDir = dir
	s := newDevServer(cfg)

	ts := httptest.NewServer(s.handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestServeStatic(t *testing.T) {
	_, ts := newTestDevServer(t)

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, reloadScriptPath) {
		t.Errorf("index.html served without reload script: %q", body)
	}

	resp, body = get(t, ts.URL+"/styles.css")
	if ct := resp.Header.Get("Content-Type"); ct != "text/css" {
		t.Errorf("styles.css Content-Type = %q", ct)
	}
	if body != "body{}" {
		t.Errorf("styles.css body = %q", body)
	}

	resp, _ = get(t, ts.URL+"/missing.html")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing file status = %d, want 404", resp.StatusCode)
	}

	resp, body = get(t, ts.URL+reloadScriptPath)
	if !strings.Contains(body, reloadPath) {
		t.Errorf("reload script does not reference %s", reloadPath)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/javascript" {
		t.Errorf("reload script Content-Type = %q", ct)
	}
}

func TestWebSocketReload(t *testing.T) {
	s, ts := newTestDevServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + reloadPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(map[string]string{"type": "HELLO"}); err != nil {
		t.Fatal(err)
	}
	var ack map[string]interface{}
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("read ack: %v", err)
	}
	if ack["type"] != "ACK" {
		t.Fatalf("first message = %v, want ACK", ack)
	}
	if n := s.clientCount(); n != 1 {
		t.Fatalf("clientCount() = %d, want 1", n)
	}

	s.notifyClients("reload", nil)

	var msg map[string]interface{}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read reload: %v", err)
	}
	if msg["type"] != "RELOAD" {
		t.Errorf("message = %v, want RELOAD", msg)
	}
}
