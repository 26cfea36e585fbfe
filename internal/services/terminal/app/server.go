// Package server hosts the terminal HTTP/WebSocket process.
//
// Each WebSocket connection owns one complete game instance. The server
// itself stays stateless across connections: closing the page abandons
// the run, reloading starts a fresh one.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/miragecorp/mirageos/internal/platform/timeouts"
	"github.com/miragecorp/mirageos/internal/services/terminal/static"
	"github.com/miragecorp/mirageos/internal/services/terminal/storage"
	storagesqlite "github.com/miragecorp/mirageos/internal/services/terminal/storage/sqlite"
	"github.com/miragecorp/mirageos/internal/services/terminal/templates"
)

// Config defines the inputs for the terminal transport boundary.
type Config struct {
	HTTPAddr          string
	DBPath            string
	ChatSeed          int64
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the terminal HTTP/WebSocket process.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	transcripts     *storagesqlite.Store
}

// NewServer builds a configured terminal server. A blank DBPath runs
// without transcript persistence.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	var transcripts *storagesqlite.Store
	if strings.TrimSpace(config.DBPath) != "" {
		store, err := storagesqlite.Open(config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open transcript storage: %w", err)
		}
		transcripts = store
	}

	var journal storage.TranscriptStore
	if transcripts != nil {
		journal = transcripts
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           newHandler(journal, config.ChatSeed),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	return &Server{
		httpAddr:        httpAddr,
		shutdownTimeout: config.ShutdownTimeout,
		httpServer:      httpServer,
		transcripts:     transcripts,
	}, nil
}

// Run creates and serves a terminal server until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init terminal server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve terminal: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("terminal server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("terminal server listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.transcripts != nil {
		if err := s.transcripts.Close(); err != nil {
			log.Printf("close transcript storage: %v", err)
		}
	}
}

// NewHandler creates terminal routes without transcript persistence,
// for tests and offline paths.
func NewHandler() http.Handler {
	return newHandler(nil, 0)
}

func newHandler(journal storage.TranscriptStore, chatSeed int64) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(static.FS)))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.Index().Render(r.Context(), w); err != nil {
			log.Printf("terminal: render index: %v", err)
		}
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		newWSHandler(journal, chatSeed).ServeHTTP(w, r)
	})

	return mux
}
