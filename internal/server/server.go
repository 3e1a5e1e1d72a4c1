// Package server exposes the interpreter over HTTP.
//
//	POST /execute          {"script": "..."} -> {"result": [...], "entries": [...]}
//	GET  /api/libs/{name}  -> {"lib": {...}}
//
// The second route serves the protocol packages.HTTPFetcher consumes, so one
// process can act as the package endpoint for another.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"learnscript/internal/logger"
	"learnscript/internal/orchestration"
	"learnscript/internal/packages"
	"learnscript/pkg/lsltypes"
)

// ExecuteRequest is the body of POST /execute.
type ExecuteRequest struct {
	Script string `json:"script"`
}

// ExecuteResponse is returned by POST /execute.
type ExecuteResponse struct {
	Result  []string               `json:"result"`
	Entries []lsltypes.ResultEntry `json:"entries"`
	Error   string                 `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves script execution and package metadata.
type Server struct {
	cfg      Config
	runner   *orchestration.Runner
	registry *packages.Registry
	logger   *log.Logger
}

// New creates a server. Every request runs in a fresh execution context.
func New(cfg Config, runner *orchestration.Runner, registry *packages.Registry) *Server {
	if registry == nil {
		registry = packages.DefaultRegistry()
	}
	return &Server{
		cfg:      cfg,
		runner:   runner,
		registry: registry,
		logger:   logger.NewStyledLogger("Server"),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /execute", s.handleExecute)
	mux.HandleFunc("GET /api/libs/{name}", s.handleLib)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxScriptBytes)

	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: fmt.Sprintf("script exceeds %d bytes", tooLarge.Limit)})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RunTimeout)
	defer cancel()

	entries, err := s.runner.Run(ctx, req.Script)
	resp := ExecuteResponse{
		Result:  lsltypes.Messages(entries),
		Entries: entries,
	}

	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		case errors.Is(err, context.Canceled):
			status = http.StatusServiceUnavailable
		default:
			status = http.StatusUnprocessableEntity
		}
	}

	s.logger.Debug("Executed script", "entries", len(entries), "status", status)
	writeJSON(w, status, resp)
}

func (s *Server) handleLib(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	entry, ok := s.registry.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("%s: %s", lsltypes.ErrPackageNotFound, name)})
		return
	}
	writeJSON(w, http.StatusOK, packages.LibResponse{Lib: packages.HandleFor(name, entry)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to write response", "error", err)
	}
}
