// Package server exposes the monitor page and its websocket feed.
package server

import (
	"context"
	"io/fs"
	"log"
	"net/http"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/rcdrive/rcdrive/internal/hub"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	page        []byte
	addr        string
	httpServer  *http.Server
}

// New builds the monitor server. The embedded frontend page is minified once
// at startup; a minifier failure falls back to the original bytes.
func New(h *hub.Hub, b *hub.Broadcaster, frontendFS fs.FS, addr string) *Server {
	page, err := fs.ReadFile(frontendFS, "index.html")
	if err != nil {
		log.Fatalf("Embedded frontend missing: %v", err)
	}

	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	if minified, err := m.Bytes("text/html", page); err == nil {
		page = minified
	} else {
		log.Printf("Frontend minification failed, serving unminified: %v", err)
	}

	return &Server{
		hub:         h,
		broadcaster: b,
		page:        page,
		addr:        addr,
	}
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(s.page)
	})

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	log.Printf("Monitor listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down monitor server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
