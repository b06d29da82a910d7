// Package server exposes the assignment pipeline over HTTP.
//
// Routes:
//
//	POST /v1/assign      solve a problem document, returns the report
//	GET  /v1/runs        list recent runs (?limit=N)
//	GET  /v1/runs/{id}   fetch one run
//	GET  /healthz        liveness probe
//
// Errors are returned as {"code": ..., "message": ...} with a status
// derived from the error code.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JHertz5/role-assignment/pkg/buildinfo"
	"github.com/JHertz5/role-assignment/pkg/cache"
	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/observability"
	"github.com/JHertz5/role-assignment/pkg/pipeline"
	"github.com/JHertz5/role-assignment/pkg/project"
	"github.com/JHertz5/role-assignment/pkg/store"
	"github.com/JHertz5/role-assignment/pkg/tableio"
	"github.com/JHertz5/role-assignment/pkg/validate"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// CacheKeyPrefix scopes the cache entries of API runs.
const CacheKeyPrefix = "api:"

// Keyer returns the cache keyer for a runner serving the API. Its keys never
// collide with those of CLI runs sharing the same cache backend.
func Keyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), CacheKeyPrefix)
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server around runner. A nil logger means log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/assign", s.handleAssign)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// AssignRequest is the body of POST /v1/assign.
type AssignRequest struct {
	tableio.Problem
	NoShuffle  bool `json:"no_shuffle,omitempty"`
	CloneAware bool `json:"clone_aware,omitempty"`
	Verify     bool `json:"verify,omitempty"`
}

// WarningJSON is one validator warning in a response.
type WarningJSON struct {
	Kind    string `json:"kind"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// AssignResponse is the body returned by POST /v1/assign.
type AssignResponse struct {
	RunID    string          `json:"run_id"`
	Report   *project.Report `json:"report"`
	Warnings []WarningJSON   `json:"warnings"`
	CacheHit bool            `json:"cache_hit"`
	Verified bool            `json:"verified"`
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if len(req.Roles) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "problem lists no roles"))
		return
	}

	opts := pipeline.Options{
		DefaultCost: req.DefaultCost,
		NoShuffle:   req.NoShuffle,
		CloneAware:  req.CloneAware,
		Verify:      req.Verify,
		Source:      "api:" + middleware.GetReqID(r.Context()),
	}
	if req.Seed != nil {
		opts.Seed = *req.Seed
	}

	res, err := s.runner.Execute(r.Context(), req.Roster(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AssignResponse{
		RunID:    res.RunID,
		Report:   res.Report,
		Warnings: warningsJSON(res.Warnings),
		CacheHit: res.CacheHit,
		Verified: res.Verified,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	runs, err := s.runner.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "list runs"))
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runner.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeNotFound, err, "run %s", chi.URLParam(r, "id")))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "get run"))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func warningsJSON(ws []validate.Warning) []WarningJSON {
	out := make([]WarningJSON, len(ws))
	for i, w := range ws {
		out[i] = WarningJSON{Kind: w.Kind.String(), Label: w.Label, Message: w.String()}
	}
	return out
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCost, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPreferences, errors.ErrCodeInvalidCloneGroup, errors.ErrCodeInvalidLabel,
		errors.ErrCodeDimensionMismatch, errors.ErrCodeUnknownRole:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := StatusFor(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", middleware.GetReqID(r.Context()), "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs one line per request at debug level and reports it to
// the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
