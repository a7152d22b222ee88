package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/internal/sanitize"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Engine defines the operations the HTTP API exposes.
type Engine interface {
	Simulate(ctx context.Context, a *domain.Automaton, input string) (*automata.Result, error)
	Convert(a *domain.Automaton) (*domain.Automaton, error)
	Equal(a, b *domain.Automaton) bool
	Closure(a *domain.Automaton, state int) []int
}

// Server serves the engine and an optional automaton library over JSON.
type Server struct {
	Engine   Engine
	Store    ports.AutomatonStore
	Gatherer prometheus.Gatherer
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithStore exposes a library of named automata under /automata.
func WithStore(store ports.AutomatonStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithGatherer serves the metrics of g under /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithMetrics records conversion sizes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine, Logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": automata.Version})
	})
	r.Post("/simulate", s.Simulate)
	r.Post("/convert", s.Convert)
	r.Post("/equal", s.Equal)
	r.Post("/closure", s.Closure)

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", s.ListAutomata)
		r.Get("/{name}", s.GetAutomaton)
		r.Put("/{name}", s.PutAutomaton)
		r.Delete("/{name}", s.DeleteAutomaton)
	})

	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	dto.Ref
	Input string `json:"input"`
	Trace bool   `json:"trace,omitempty"`
}

// SimulateResponse reports the verdict of a run.
type SimulateResponse struct {
	Outcome  domain.Outcome         `json:"outcome"`
	Accepted bool                   `json:"accepted"`
	Rounds   int                    `json:"rounds"`
	Created  int                    `json:"configurations"`
	Trace    []domain.Configuration `json:"trace,omitempty"`
}

// ConvertResponse carries the determinized automaton.
type ConvertResponse struct {
	Automaton dto.Document `json:"automaton"`
}

// EqualRequest is the body of POST /equal.
type EqualRequest struct {
	Left  dto.Ref `json:"left"`
	Right dto.Ref `json:"right"`
}

// EqualResponse reports whether two automata are isomorphic.
type EqualResponse struct {
	Equal bool `json:"equal"`
}

// ClosureRequest is the body of POST /closure.
type ClosureRequest struct {
	dto.Ref
	State int `json:"state"`
}

// ClosureResponse lists the epsilon-closure of a state.
type ClosureResponse struct {
	Closure []int `json:"closure"`
}

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if !s.decode(w, r, &body) {
		return
	}
	input, err := sanitize.Input(body.Input)
	if err != nil {
		s.fail(w, "Simulate", &domain.ValidationError{Key: "input", Reason: err.Error()})
		return
	}
	a, err := body.Resolve(r.Context(), s.Store)
	if err != nil {
		s.fail(w, "Simulate", err)
		return
	}

	res, err := s.Engine.Simulate(r.Context(), a, input)
	if err != nil {
		s.fail(w, "Simulate", err)
		return
	}

	resp := SimulateResponse{
		Outcome:  res.Outcome,
		Accepted: res.Accepted(),
		Rounds:   res.Rounds,
		Created:  res.Created,
	}
	if body.Trace {
		resp.Trace = res.Trace()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Convert handles the POST /convert request.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var body dto.Ref
	if !s.decode(w, r, &body) {
		return
	}
	a, err := body.Resolve(r.Context(), s.Store)
	if err != nil {
		s.fail(w, "Convert", err)
		return
	}
	dfa, err := s.Engine.Convert(a)
	if err != nil {
		s.fail(w, "Convert", err)
		return
	}
	if s.Metrics != nil {
		s.Metrics.ObserveConversion(a.NumStates(), dfa.NumStates())
	}
	writeJSON(w, http.StatusOK, ConvertResponse{Automaton: dto.FromDomain(body.Name, dfa)})
}

// Equal handles the POST /equal request.
func (s *Server) Equal(w http.ResponseWriter, r *http.Request) {
	var body EqualRequest
	if !s.decode(w, r, &body) {
		return
	}
	left, err := body.Left.Resolve(r.Context(), s.Store)
	if err != nil {
		s.fail(w, "Equal", err)
		return
	}
	right, err := body.Right.Resolve(r.Context(), s.Store)
	if err != nil {
		s.fail(w, "Equal", err)
		return
	}
	writeJSON(w, http.StatusOK, EqualResponse{Equal: s.Engine.Equal(left, right)})
}

// Closure handles the POST /closure request.
func (s *Server) Closure(w http.ResponseWriter, r *http.Request) {
	var body ClosureRequest
	if !s.decode(w, r, &body) {
		return
	}
	a, err := body.Resolve(r.Context(), s.Store)
	if err != nil {
		s.fail(w, "Closure", err)
		return
	}
	if !a.HasState(body.State) {
		s.fail(w, "Closure", &domain.ValidationError{Key: "state", Reason: "unknown state", Value: body.State})
		return
	}
	writeJSON(w, http.StatusOK, ClosureResponse{Closure: s.Engine.Closure(a, body.State)})
}

// ListAutomata handles GET /automata.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, "ListAutomata", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"automata": names})
}

// GetAutomaton handles GET /automata/{name}.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	name := chi.URLParam(r, "name")
	a, err := s.Store.Load(r.Context(), name)
	if err != nil {
		s.fail(w, "GetAutomaton", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromDomain(name, a))
}

// PutAutomaton handles PUT /automata/{name}.
func (s *Server) PutAutomaton(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var doc dto.Document
	if !s.decode(w, r, &doc) {
		return
	}
	a, err := doc.ToDomain()
	if err != nil {
		s.fail(w, "PutAutomaton", err)
		return
	}
	if err := s.Store.Save(r.Context(), chi.URLParam(r, "name"), a); err != nil {
		s.fail(w, "PutAutomaton", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAutomaton handles DELETE /automata/{name}.
func (s *Server) DeleteAutomaton(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, "DeleteAutomaton", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no automaton store configured"})
		return false
	}
	return true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// fail maps err to a status code and writes it as JSON.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}
	for _, verr := range domain.ValidationErrors(err) {
		resp.Details = append(resp.Details, verr.Error())
	}
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Debug(op+" rejected", "error", err, "status", status)
	}
	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFiniteAutomaton), errors.Is(err, domain.ErrNoInitialState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
