package gate

import (
	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/scoring"
)

// Preview is the live feedback for a partially filled form.
type Preview struct {
	scoring.Result
	scoring.Band
	CanGenerate      bool                  `json:"canGenerate"`
	MinScore         int                   `json:"minScore"`
	RulesVersion     string                `json:"rulesVersion"`
	IncompleteFields []string              `json:"incompleteFields"`
	Fields           []scoring.FieldStatus `json:"fields"`
}

// Preview scores form without validating it. CanGenerate only reflects the
// threshold; required fields are checked by Evaluate.
func (g Generation) Preview(form model.PitchForm) Preview {
	res := scoring.Evaluate(form)
	incomplete := scoring.Incomplete(form)
	if incomplete == nil {
		incomplete = []string{}
	}
	return Preview{
		Result:           res,
		Band:             scoring.BandFor(res.Percentage),
		CanGenerate:      g.Allows(res.Percentage),
		MinScore:         g.MinScore,
		RulesVersion:     scoring.RulesVersion,
		IncompleteFields: incomplete,
		Fields:           scoring.FieldStatuses(form),
	}
}
