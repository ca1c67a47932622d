// Package server exposes layout passes over HTTP.
//
// Routes:
//
//	POST /v1/layout   tile set JSON in, pipeline.Result JSON out
//	GET  /healthz     liveness probe
//
// Every response carries an X-Request-ID header; a client-supplied ID is
// echoed back, otherwise a new UUID is generated.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/jewelry/pkg/buildinfo"
	jerrors "github.com/matzehuels/jewelry/pkg/errors"
	jio "github.com/matzehuels/jewelry/pkg/io"
	"github.com/matzehuels/jewelry/pkg/observability"
	"github.com/matzehuels/jewelry/pkg/pipeline"
)

// MaxRequestBytes bounds the size of a layout request body.
const MaxRequestBytes = 4 << 20

// HeaderRequestID is the request correlation header.
const HeaderRequestID = "X-Request-ID"

type ctxKey struct{}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Server serves the layout API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server running passes on runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, jerrors.New(jerrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Middleware
// =============================================================================

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := RequestID(ctx)
		hooks := observability.HTTP()
		hooks.OnRequest(ctx, id, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		d := time.Since(start)
		hooks.OnResponse(ctx, id, r.Method, r.URL.Path, ww.Status(), d)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", d)
	})
}

// =============================================================================
// Handlers
// =============================================================================

// layoutRequest is a tile set plus per-request options.
type layoutRequest struct {
	jio.TileSet
	LastLineReorder bool `json:"lastLineReorder,omitempty"`
	Refresh         bool `json:"refresh,omitempty"`
}

type errorResponse struct {
	Code      jerrors.Code `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	res, err := s.runner.Layout(r.Context(), &req.TileSet, pipeline.Options{
		LastLineReorder: req.LastLineReorder,
		Refresh:         req.Refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := jerrors.GetCode(err)
	switch {
	case jerrors.IsConfiguration(err):
		status = http.StatusBadRequest
	case code == jerrors.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	if code == "" {
		code = jerrors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("layout failed", "id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   jerrors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
