// Package server assembles the HTTP handlers and starts the server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/framegen/internal/store"
	"github.com/matthewbaird/framegen/internal/wire"
)

// Config holds server configuration.
type Config struct {
	Port  int
	Store store.Store
	// SessionIdle is how long an idle WebSocket session is kept.
	SessionIdle time.Duration
}

const defaultSessionIdle = 30 * time.Minute

func (cfg Config) sessionIdle() time.Duration {
	if cfg.SessionIdle <= 0 {
		return defaultSessionIdle
	}
	return cfg.SessionIdle
}

// NewRouter registers every route on a chi router. Idle WebSocket sessions
// are only reaped by Run.
func NewRouter(cfg Config) http.Handler {
	return newRouter(cfg, wire.NewSessions(cfg.sessionIdle()))
}

func newRouter(cfg Config, sessions *wire.Sessions) http.Handler {
	r := chi.NewRouter()
	r.Use(Recovery, Logging)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	gh := NewGenerateHandler(cfg.Store)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/generate", gh.Generate)
		r.Get("/runs", gh.ListRuns)
		r.Get("/runs/{id}", gh.GetRun)
		r.Handle("/ws", wire.NewHandler(sessions, cfg.Store))
	})
	return r
}

// Run starts the HTTP server and shuts it down when ctx is done. Idle
// WebSocket sessions are closed while it runs.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting server on %s", addr)

	sessions := wire.NewSessions(cfg.sessionIdle())
	go sessions.Run(ctx, cfg.sessionIdle()/10)

	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(cfg, sessions),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
