// Package server exposes the designs over loopback HTTP so browser-based
// previews can load documents and their relative assets without file://
// restrictions.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/atelierhq/atelier/internal/catalog"
)

type Server struct {
	port    int
	designs string
	archive string
	builder *catalog.Builder
	httpSrv *http.Server
}

func New(port int, designsDir, archiveDir string, builder *catalog.Builder) *Server {
	s := &Server{
		port:    port,
		designs: designsDir,
		archive: archiveDir,
		builder: builder,
	}
	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", port),
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(allowLocalPreview)

	r.Get("/api/designs", s.listDesignsHandler)

	r.Group(func(r chi.Router) {
		fs := http.FileServer(http.Dir(s.designs))
		r.Handle("/designs/*", http.StripPrefix("/designs/", fs))
	})
	r.Group(func(r chi.Router) {
		fs := http.FileServer(http.Dir(s.archive))
		r.Handle("/archive/*", http.StripPrefix("/archive/", fs))
	})

	return r
}

// allowLocalPreview relaxes CORS for preview frames. The listener is
// loopback-only, so the permissive header does not widen exposure.
func allowLocalPreview(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listDesignsHandler(w http.ResponseWriter, r *http.Request) {
	designs, err := s.builder.Build()
	if err != nil {
		log.Printf("server: catalog rebuild failed: %v", err)
		http.Error(w, "failed to build catalog", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(designs); err != nil {
		log.Printf("server: failed to encode catalog: %v", err)
	}
}

// DesignURL returns the loopback URL serving a design.
func (s *Server) DesignURL(name string, archived bool) string {
	prefix := "designs"
	if archived {
		prefix = "archive"
	}
	return fmt.Sprintf("http://127.0.0.1:%d/%s/%s", s.port, prefix, name)
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}
