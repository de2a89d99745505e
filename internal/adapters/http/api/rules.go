package api

import (
	"net/http"

	"github.com/okian/pitchgate/internal/domain/scoring"
)

// RulesHandler serves the rule table.
type RulesHandler struct {
	table scoring.Table
}

// NewRulesHandler creates a rules handler.
func NewRulesHandler() *RulesHandler {
	return &RulesHandler{table: scoring.Describe()}
}

// HandleRules handles GET /api/rules.
func (h *RulesHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, h.table)
}
