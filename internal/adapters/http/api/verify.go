package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/pitchgate/internal/adapters/crm"
	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/verification"
	"github.com/okian/pitchgate/pkg/logger"
	"github.com/okian/pitchgate/pkg/metrics"
)

// Verification actions.
const (
	ActionRequest = "request"
	ActionVerify  = "verify"
)

// VerifyHandler serves /api/verify-email.
type VerifyHandler struct {
	deps     VerifyDependencies
	throttle *IPThrottle
	logger   logger.Logger
}

// NewVerifyHandler creates a new verification handler. A nil throttle
// disables per-client throttling.
func NewVerifyHandler(deps VerifyDependencies, throttle *IPThrottle) *VerifyHandler {
	return &VerifyHandler{deps: deps, throttle: throttle, logger: logger.Get().Named("verify")}
}

type verifyRequest struct {
	Email    string           `json:"email"`
	Action   string           `json:"action"`
	Code     string           `json:"code"`
	FormData *model.PitchForm `json:"formData"`
}

type verifyResponse struct {
	Success  bool   `json:"success"`
	Verified bool   `json:"verified,omitempty"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
}

// HandleVerifyEmail handles POST /api/verify-email.
func (h *VerifyHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if h.throttle != nil && !h.throttle.Allow(ClientIP(r)) {
		metrics.RecordRateLimited("verify")
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusTooManyRequests, codeRateLimited, msgVerifyRateLimited)
		return
	}

	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, msgInvalidBody)
		return
	}
	email, err := verification.NormalizeEmail(req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidEmail, msgInvalidEmail)
		return
	}

	switch strings.TrimSpace(req.Action) {
	case ActionRequest:
		h.request(w, r, email)
	case ActionVerify:
		h.verify(w, r, email, req)
	default:
		writeError(w, http.StatusBadRequest, codeInvalidAction, msgInvalidAction)
	}
}

func (h *VerifyHandler) request(w http.ResponseWriter, r *http.Request, email string) {
	ctx := r.Context()
	c, err := h.deps.RequestCode(ctx, email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := verifyResponse{Success: true, Message: "Verification code sent to your email"}
	if h.deps.Development() {
		resp.Code = c.Value
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *VerifyHandler) verify(w http.ResponseWriter, r *http.Request, email string, req verifyRequest) {
	ctx := r.Context()
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, codeCodeRequired, msgCodeRequired)
		return
	}
	if err := h.deps.VerifyCode(ctx, email, req.Code); err != nil {
		h.fail(w, r, err)
		return
	}

	jobID, err := h.deps.EnqueueContactSync(ctx, email, req.FormData)
	switch {
	case errors.Is(err, crm.ErrNotConfigured):
		h.logger.Debug(ctx, "crm not configured, contact sync skipped", logger.String("email", email))
	case err != nil:
		h.logger.Error(ctx, "contact sync not scheduled", logger.String("email", email), logger.Error(err))
	case jobID != "":
		h.logger.Info(ctx, "contact sync scheduled", logger.String("email", email), logger.String("job_id", jobID))
	}

	writeJSON(w, http.StatusOK, verifyResponse{Success: true, Verified: true, Message: "Email verified successfully"})
}

func (h *VerifyHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	mapped := verificationError(err)
	if mapped.status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "verification failed", logger.Error(err))
	}
	resp := errorResponse{Error: mapped.msg, Code: mapped.code}
	if mapped.status >= http.StatusInternalServerError && h.deps.Development() {
		resp.Message = err.Error()
	}
	writeJSON(w, mapped.status, resp)
}
