// Package server exposes registered timers over HTTP: lifecycle endpoints to
// drive them and report endpoints rendering the collected checkpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"github.com/and161185/checkpoint-timer/internal/config"
	"github.com/and161185/checkpoint-timer/internal/server/middleware"
	"github.com/and161185/checkpoint-timer/model"
	"github.com/and161185/checkpoint-timer/registry"
	"github.com/and161185/checkpoint-timer/render"
	"github.com/and161185/checkpoint-timer/timer"
)

// Server drives a timer registry over HTTP.
type Server struct {
	registry *registry.Registry
	config   *config.ServerConfig
}

func NewServer(reg *registry.Registry, config *config.ServerConfig) *Server {
	return &Server{
		registry: reg,
		config:   config,
	}
}

// Router builds the chi router with all timer endpoints.
func (srv *Server) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.config.Logger))
	router.Use(middleware.CompressMiddleware)
	router.Post("/timers/{name}/start", srv.StartTimerHandler)
	router.Post("/timers/{name}/checkpoint/{checkpoint}", srv.CheckpointHandler)
	router.Post("/timers/{name}/finish", srv.FinishTimerHandler)
	router.Post("/timers/{name}/reset", srv.ResetTimerHandler)
	router.Delete("/timers/{name}", srv.DeleteTimerHandler)
	router.Get("/timers/{name}/report", srv.ReportHandler)
	router.Get("/", srv.ListTimersHandler)
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (srv *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: srv.config.Addr, Handler: srv.Router()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (srv *Server) StartTimerHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	opts := []timer.Option{timer.WithRenderMode(srv.config.ReportMode)}
	if srv.config.MemoryProfiling {
		opts = append(opts, timer.WithMemoryProfiling())
	}
	srv.registry.GetOrCreate(name, opts...)

	err := srv.registry.Do(name, func(t timer.Timer) error {
		return t.Start()
	})
	if err != nil {
		srv.writeError(w, name, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (srv *Server) CheckpointHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	checkpoint := chi.URLParam(r, "checkpoint")
	id := r.URL.Query().Get("id")

	err := srv.registry.Do(name, func(t timer.Timer) error {
		if id != "" {
			return t.Checkpoint(checkpoint, timer.WithID(id))
		}
		return t.Checkpoint(checkpoint)
	})
	if err != nil {
		srv.writeError(w, name, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (srv *Server) FinishTimerHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	err := srv.registry.Do(name, func(t timer.Timer) error {
		return t.Finish()
	})
	if err != nil {
		srv.writeError(w, name, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (srv *Server) ResetTimerHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	err := srv.registry.Do(name, func(t timer.Timer) error {
		t.Reset()
		return nil
	})
	if err != nil {
		srv.writeError(w, name, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (srv *Server) DeleteTimerHandler(w http.ResponseWriter, r *http.Request) {
	srv.registry.Delete(chi.URLParam(r, "name"))
	w.WriteHeader(http.StatusOK)
}

func (srv *Server) ReportHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	mode := srv.config.ReportMode
	switch r.URL.Query().Get("format") {
	case "text":
		mode = model.ModeTerminal
	case "html":
		mode = model.ModeMarkup
	}

	var report string
	err := srv.registry.Do(name, func(t timer.Timer) error {
		rnd := render.New(t, render.WithMode(mode))
		var rerr error
		if mode == model.ModeMarkup {
			report, rerr = rnd.HTML()
		} else {
			report, rerr = rnd.Text()
		}
		return rerr
	})
	if err != nil {
		srv.writeError(w, name, err)
		return
	}

	if mode == model.ModeMarkup {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, report); err != nil {
		srv.config.Logger.Errorf("failed to write report for timer %q: %v", name, err)
	}
}

func (srv *Server) ListTimersHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprintln(w, "<html><body><ul>"); err != nil {
		srv.config.Logger.Errorf("failed to start response body for list timers: %v", err)
		return
	}
	for _, name := range srv.registry.Names() {
		state := "finished"
		_ = srv.registry.Do(name, func(t timer.Timer) error {
			if t.IsRunning() {
				state = "running"
			}
			return nil
		})
		escaped := html.EscapeString(name)
		if _, err := fmt.Fprintf(w, "<li><a href=\"/timers/%s/report\">%s</a> (%s)</li>", escaped, escaped, state); err != nil {
			srv.config.Logger.Errorf("failed to write list entry for timer %q: %v", name, err)
			return
		}
	}
	if _, err := fmt.Fprintln(w, "</ul></body></html>"); err != nil {
		srv.config.Logger.Errorf("failed to finish response body for list timers: %v", err)
	}
}

// writeError maps domain errors to HTTP status codes: unknown timers to 404,
// reserved names to 400, state-machine misuse to 409.
func (srv *Server) writeError(w http.ResponseWriter, name string, err error) {
	srv.config.Logger.Infof("timer %q: %v", name, err)

	switch {
	case errors.Is(err, registry.ErrTimerNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, timer.ErrReservedName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, timer.ErrAlreadyRunning),
		errors.Is(err, timer.ErrNotRunning),
		errors.Is(err, timer.ErrStillRunning),
		errors.Is(err, render.ErrNotFinished):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
