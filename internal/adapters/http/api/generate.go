package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/pitchgate/internal/domain/gate"
	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/ratelimit"
	"github.com/okian/pitchgate/pkg/logger"
)

// Rate limit headers set on every generation response.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// GenerateHandler serves /api/generate.
type GenerateHandler struct {
	deps   GenerateDependencies
	logger logger.Logger
}

// NewGenerateHandler creates a new generation handler.
func NewGenerateHandler(deps GenerateDependencies) *GenerateHandler {
	return &GenerateHandler{deps: deps, logger: logger.Get().Named("generate")}
}

type rateLimitView struct {
	Remaining int    `json:"remaining"`
	ResetAt   string `json:"resetAt"`
}

type generateStatusResponse struct {
	Status    string `json:"status"`
	Provider  string `json:"provider"`
	RateLimit int    `json:"rateLimit"`
}

type generateResponse struct {
	Success             bool          `json:"success"`
	GenerationTimeMs    int64         `json:"generationTimeMs"`
	Pitches             model.Pitches `json:"pitches"`
	LockedUntilVerified []string      `json:"lockedUntilVerified"`
	RateLimit           rateLimitView `json:"rateLimit"`
}

type rateLimitedResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	RetryAfter int64  `json:"retryAfter"`
}

type rejectionResponse struct {
	Error            string   `json:"error"`
	Code             string   `json:"code"`
	Errors           []string `json:"errors"`
	Score            int      `json:"score"`
	IncompleteFields []string `json:"incompleteFields"`
	Message          string   `json:"message"`
	MinScore         int      `json:"minScore"`
}

// HandleGenerate handles GET and POST /api/generate.
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, generateStatusResponse{
			Status:    "ok",
			Provider:  h.deps.Provider(),
			RateLimit: h.deps.RateLimit(),
		})
	case http.MethodPost:
		h.generate(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (h *GenerateHandler) generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	client := ClientIP(r)

	decision, err := h.deps.AllowGeneration(ctx, client)
	if err != nil {
		h.logger.Warn(ctx, "rate limiter unavailable, allowing request",
			logger.String("client", client), logger.Error(err))
		decision = ratelimit.Decision{
			Allowed:   true,
			Limit:     h.deps.RateLimit(),
			Remaining: h.deps.RateLimit(),
			ResetAt:   time.Now(),
		}
	}
	setRateLimitHeaders(w, decision)

	if !decision.Allowed {
		retry := int64(math.Ceil(decision.RetryAfter.Seconds()))
		w.Header().Set("Retry-After", strconv.FormatInt(retry, 10))
		writeJSON(w, http.StatusTooManyRequests, rateLimitedResponse{
			Error:      msgGenerateRateLimited,
			Code:       codeRateLimited,
			RetryAfter: retry,
		})
		return
	}

	var form model.PitchForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, msgInvalidBody)
		return
	}

	req, err := h.deps.Evaluate(form)
	var rej *gate.Rejection
	if errors.As(err, &rej) {
		writeRejection(w, rej)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, msgValidationFailed)
		return
	}

	start := time.Now()
	pitches, err := h.deps.Generate(ctx, req)
	if err != nil {
		h.logger.Error(ctx, "pitch generation failed", logger.Error(err))
		mapped := generationError(err)
		resp := errorResponse{Error: mapped.msg, Code: mapped.code}
		if h.deps.Development() {
			resp.Message = err.Error()
		}
		writeJSON(w, mapped.status, resp)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Success:             true,
		GenerationTimeMs:    time.Since(start).Milliseconds(),
		Pitches:             pitches,
		LockedUntilVerified: gate.LockedSections(false),
		RateLimit: rateLimitView{
			Remaining: decision.Remaining,
			ResetAt:   decision.ResetAt.UTC().Format(time.RFC3339),
		},
	})
}

func setRateLimitHeaders(w http.ResponseWriter, d ratelimit.Decision) {
	reset := int64(math.Ceil(float64(d.ResetAt.UnixMilli()) / 1000))
	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))
	w.Header().Set(HeaderRateLimitReset, strconv.FormatInt(reset, 10))
}

func writeRejection(w http.ResponseWriter, rej *gate.Rejection) {
	resp := rejectionResponse{
		Error:            msgValidationFailed,
		Code:             codeValidation,
		Errors:           rej.Errors,
		Score:            rej.Score,
		IncompleteFields: rej.Incomplete,
		Message:          rej.Message,
		MinScore:         rej.MinScore,
	}
	if rej.Reason == gate.InsufficientScore {
		resp.Error = msgScoreTooLow
		resp.Code = codeInsufficientScore
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if resp.IncompleteFields == nil {
		resp.IncompleteFields = []string{}
	}
	writeJSON(w, http.StatusBadRequest, resp)
}
