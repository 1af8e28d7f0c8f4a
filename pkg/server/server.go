// Package server exposes a controller over HTTP so that external renderers
// (a browser canvas, a script) can drive and observe sorts.
//
// All responses are JSON. Renderers poll GET /api/state at their own cadence,
// the same pull model the terminal UI uses.
//
//	GET  /healthz                 status and build version
//	GET  /api/state               working array, highlight, running flag
//	GET  /api/algorithms          registered algorithms in key order
//	POST /api/randomize           new base snapshot (409 while running)
//	POST /api/reset               reload the base snapshot (409 while running)
//	POST /api/sort/{algorithm}    start a run (400 unknown, 409 busy)
//	POST /api/cancel              interrupt the active run
//	PUT  /api/speed               {"speed": 2.0}
//	GET  /api/runs/last           latest run (404 before the first)
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sortviz/pkg/buildinfo"
	"github.com/matzehuels/sortviz/pkg/controller"
	"github.com/matzehuels/sortviz/pkg/errors"
	"github.com/matzehuels/sortviz/pkg/observability"
	"github.com/matzehuels/sortviz/pkg/sorting"
	"github.com/matzehuels/sortviz/pkg/visual"
)

// Controller is the subset of [controller.Controller] the server drives.
type Controller interface {
	RandomizeAndLoad() error
	LoadFromBase() error
	StartSort(ctx context.Context, id string) (string, error)
	Cancel() bool
	Running() bool
	Frame() visual.Frame
	LastRun() (controller.RunResult, bool)
	Speed() float64
	SetSpeed(s float64) error
}

// Server routes HTTP requests to a Controller.
type Server struct {
	ctrl   Controller
	runCtx context.Context
	logger *log.Logger
	router chi.Router
}

// New builds the router. Runs started over HTTP are bound to runCtx rather
// than to the request, so they outlive the POST that started them.
func New(runCtx context.Context, ctrl Controller, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{ctrl: ctrl, runCtx: runCtx, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Short()})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/algorithms", s.handleAlgorithms)
		r.Post("/randomize", s.handleRandomize)
		r.Post("/reset", s.handleReset)
		r.Post("/sort/{algorithm}", s.handleSort)
		r.Post("/cancel", s.handleCancel)
		r.Put("/speed", s.handleSpeed)
		r.Get("/runs/last", s.handleLastRun)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully and cancels any active run.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return errors.Wrap(errors.ErrCodeInternal, err, "serve %s", addr)
	case <-ctx.Done():
	}

	s.ctrl.Cancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return ctx.Err()
}

// StateResponse is the body of GET /api/state.
type StateResponse struct {
	visual.Frame
	Running bool    `json:"running"`
	Speed   float64 `json:"speed"`
}

// AlgorithmInfo describes one registered algorithm.
type AlgorithmInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Key        int    `json:"key"`
	PauseUnits int    `json:"pause_units"`
	Stable     bool   `json:"stable"`
}

type startResponse struct {
	Run       string `json:"run"`
	Algorithm string `json:"algorithm"`
}

// maxBodyBytes bounds request bodies; the only one is a small speed object.
const maxBodyBytes = 1 << 10

type speedRequest struct {
	Speed float64 `json:"speed"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StateResponse{
		Frame:   s.ctrl.Frame(),
		Running: s.ctrl.Running(),
		Speed:   s.ctrl.Speed(),
	})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, _ *http.Request) {
	algs := sorting.All()
	out := make([]AlgorithmInfo, len(algs))
	for i, a := range algs {
		out[i] = AlgorithmInfo{
			ID:         string(a),
			Title:      a.Title(),
			Key:        a.Key(),
			PauseUnits: a.PauseUnits(),
			Stable:     a.Stable(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRandomize(w http.ResponseWriter, _ *http.Request) {
	if err := s.ctrl.RandomizeAndLoad(); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	if err := s.ctrl.LoadFromBase(); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "algorithm")
	run, err := s.ctrl.StartSort(s.runCtx, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	alg, _ := sorting.Parse(id)
	writeJSON(w, http.StatusAccepted, startResponse{Run: run, Algorithm: string(alg)})
}

func (s *Server) handleCancel(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": s.ctrl.Cancel()})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := s.ctrl.SetSpeed(req.Speed); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, speedRequest{Speed: s.ctrl.Speed()})
}

func (s *Server) handleLastRun(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.ctrl.LastRun()
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no run yet"))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAlgorithm, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeBusy, errors.ErrCodeCancelled:
		return http.StatusConflict
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status,
			"duration", elapsed, "id", middleware.GetReqID(r.Context()))
	})
}
