package api

import (
	"net/http"

	"github.com/okian/pitchgate/internal/domain/gate"
	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/pkg/metrics"
)

// ScoreHandler serves the live score preview.
type ScoreHandler struct {
	minScore func() int
}

// NewScoreHandler creates a score handler reading the threshold from minScore.
func NewScoreHandler(minScore func() int) *ScoreHandler {
	return &ScoreHandler{minScore: minScore}
}

// HandleScore handles POST /api/score.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var form model.PitchForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, msgInvalidBody)
		return
	}
	preview := gate.NewGeneration(h.minScore()).Preview(form)
	metrics.RecordScore("api", preview.Percentage)
	writeJSON(w, http.StatusOK, preview)
}
