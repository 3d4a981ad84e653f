package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/dfacheck"
	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/aretw0/dfacheck/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// maxBodyBytes bounds a request body, machine description included.
const maxBodyBytes = 1 << 20

// Checker defines what the HTTP adapter needs from the dfacheck core.
type Checker interface {
	Load(ctx context.Context, data []byte, format dfacheck.Format) (*domain.Automaton, error)
	Check(ctx context.Context, data []byte, format dfacheck.Format, word string, mode domain.Mode) (domain.Verdict, error)
}

// CheckRequest is the body of POST /check.
type CheckRequest struct {
	Machine string `json:"machine"`
	Format  string `json:"format,omitempty"`
	Word    string `json:"word"`
	Mode    string `json:"mode,omitempty"`
}

// CheckResponse is the answer to POST /check.
type CheckResponse struct {
	Answer     string       `json:"answer"`
	Accepted   bool         `json:"accepted"`
	Mode       domain.Mode  `json:"mode"`
	Word       string       `json:"word"`
	FinalState string       `json:"final_state,omitempty"`
	Error      *ErrorDetail `json:"error,omitempty"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Machine string `json:"machine"`
	Format  string `json:"format,omitempty"`
}

// ValidateResponse is the answer to POST /validate.
type ValidateResponse struct {
	Valid  bool             `json:"valid"`
	Report *dfacheck.Report `json:"report,omitempty"`
	Error  *ErrorDetail     `json:"error,omitempty"`
}

// ErrorDetail describes why a machine or query was rejected.
type ErrorDetail struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
	Details []string         `json:"details,omitempty"`
}

// Server serves one query per request; it keeps no automaton between calls.
type Server struct {
	Checker Checker
	Logger  *slog.Logger
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) { c.gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(c *handlerConfig) { c.logger = l }
}

// NewHandler creates a new HTTP handler for the checker.
func NewHandler(checker Checker, opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	server := &Server{Checker: checker, Logger: cfg.logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", server.Health)
	r.Post("/check", server.Check)
	r.Post("/validate", server.Validate)
	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", observability.Handler(cfg.gatherer))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{"status": "ok", "version": dfacheck.Version})
}

// Check handles the POST /check request.
func (s *Server) Check(w http.ResponseWriter, r *http.Request) {
	var body CheckRequest
	if !s.decode(w, r, &body) {
		return
	}
	format, err := dfacheck.ParseFormat(body.Format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mode, err := domain.ParseMode(body.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := s.Checker.Check(r.Context(), []byte(body.Machine), format, body.Word, mode)
	if err != nil && !isRejection(err) {
		http.Error(w, "internal error", http.StatusInternalServerError)
		s.Logger.Error("Check failed", "error", err)
		return
	}

	writeJSON(w, s.Logger, http.StatusOK, CheckResponse{
		Answer:     v.Answer(),
		Accepted:   v.Accepted,
		Mode:       v.Mode,
		Word:       v.Word,
		FinalState: v.FinalState,
		Error:      detail(err),
	})
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if !s.decode(w, r, &body) {
		return
	}
	format, err := dfacheck.ParseFormat(body.Format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := s.Checker.Load(r.Context(), []byte(body.Machine), format)
	if err != nil {
		if !isRejection(err) {
			http.Error(w, "internal error", http.StatusInternalServerError)
			s.Logger.Error("Validate failed", "error", err)
			return
		}
		writeJSON(w, s.Logger, http.StatusOK, ValidateResponse{Error: detail(err)})
		return
	}

	report := dfacheck.Analyze(a)
	writeJSON(w, s.Logger, http.StatusOK, ValidateResponse{Valid: true, Report: &report})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, "Invalid request body", status)
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

// isRejection tells definite rejects (invalid machine, bad query) apart from
// internal failures.
func isRejection(err error) bool {
	return domain.IsValidationError(err) || domain.Kind(err) == domain.KindOutOfAlphabet
}

func detail(err error) *ErrorDetail {
	if err == nil {
		return nil
	}
	d := &ErrorDetail{Kind: domain.Kind(err), Message: err.Error()}
	if errs := domain.ValidationErrors(err); len(errs) > 1 {
		for _, e := range errs {
			d.Details = append(d.Details, e.Error())
		}
	}
	return d
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
