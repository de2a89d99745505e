// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/ratelimit"
	"github.com/okian/pitchgate/internal/domain/verification"
	"github.com/okian/pitchgate/pkg/logger"
	"github.com/okian/pitchgate/pkg/metrics"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// GenerateDependencies are used by the generation endpoint.
type GenerateDependencies interface {
	AllowGeneration(ctx context.Context, clientKey string) (ratelimit.Decision, error)
	Evaluate(form model.PitchForm) (model.GenerationRequest, error)
	Generate(ctx context.Context, req model.GenerationRequest) (model.Pitches, error)
	RateLimit() int
	Provider() string
	Development() bool
}

// VerifyDependencies are used by the verification endpoint.
type VerifyDependencies interface {
	RequestCode(ctx context.Context, email string) (verification.Code, error)
	VerifyCode(ctx context.Context, email, code string) error
	EnqueueContactSync(ctx context.Context, email string, form *model.PitchForm) (string, error)
	Development() bool
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	GenerateDependencies
	VerifyDependencies
	MinScore() int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	generateHandler *GenerateHandler
	verifyHandler   *VerifyHandler
	scoreHandler    *ScoreHandler
	rulesHandler    *RulesHandler
	throttle        *IPThrottle
	logger          logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := options{verifyRPS: defaultVerifyRPS, verifyBurst: defaultVerifyBurst}
	for _, opt := range opts {
		opt(&o)
	}
	throttle := NewIPThrottle(o.verifyRPS, o.verifyBurst)
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		generateHandler: NewGenerateHandler(deps),
		verifyHandler:   NewVerifyHandler(deps, throttle),
		scoreHandler:    NewScoreHandler(deps.MinScore),
		rulesHandler:    NewRulesHandler(),
		throttle:        throttle,
		logger:          logger.Get().Named("http"),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.Handle("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.Handle("/api/generate", s.wrap(s.generateHandler.HandleGenerate, "generate"))
	mux.Handle("/api/verify-email", s.wrap(s.verifyHandler.HandleVerifyEmail, "verify_email"))
	mux.Handle("/api/score", s.wrap(s.scoreHandler.HandleScore, "score"))
	mux.Handle("/api/rules", s.wrap(s.rulesHandler.HandleRules, "rules"))
}

func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.logger)
}

// Start runs background cleanup of idle throttle entries until ctx is done.
func (s *Server) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(throttleCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.throttle.Cleanup(throttleIdleTimeout)
			}
		}
	}()
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return wrapKind(ErrBadRequest, err)
	}
	return nil
}
