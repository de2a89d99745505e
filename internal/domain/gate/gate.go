// Package gate holds the two independent decisions around a pitch: whether
// generation may run (score based) and how much of a result is shown
// (verification based).
package gate

import (
	"errors"
	"fmt"

	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/scoring"
	"github.com/okian/pitchgate/internal/domain/validation"
)

// DefaultMinScore is the percentage a pitch needs before generation runs.
const DefaultMinScore = 50

// Reason classifies a generation rejection.
type Reason string

// Rejection reasons.
const (
	MissingRequiredFields Reason = "missing_required_fields"
	InsufficientScore     Reason = "insufficient_score"
)

// Rejection is returned when the generation gate refuses a form.
type Rejection struct {
	Reason Reason
	// Errors holds "<Label>: <Hint>" for every unmet required rule.
	Errors []string
	// Score is always the authoritative percentage of the submitted form.
	Score int
	// Incomplete lists every unsatisfied rule label, required first.
	Incomplete []string
	Message    string
	MinScore   int
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("generation rejected (%s): %s", r.Reason, r.Message)
}

// Is matches the reason sentinels.
func (r *Rejection) Is(target error) bool {
	switch r.Reason {
	case MissingRequiredFields:
		return target == ErrMissingRequiredFields
	case InsufficientScore:
		return target == ErrInsufficientScore
	}
	return false
}

// Generation is the server-side minimum score gate.
type Generation struct {
	MinScore int
}

// NewGeneration returns a gate with the given threshold; out-of-range values
// fall back to DefaultMinScore.
func NewGeneration(minScore int) Generation {
	if minScore < 0 || minScore > 100 {
		minScore = DefaultMinScore
	}
	return Generation{MinScore: minScore}
}

// Evaluate validates required fields first, then enforces the score
// threshold. On success it returns the normalized generation request.
func (g Generation) Evaluate(form model.PitchForm) (model.GenerationRequest, error) {
	req, err := validation.Validate(form)
	score := scoring.Calculate(form)

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return req, &Rejection{
			Reason:     MissingRequiredFields,
			Errors:     verrs.Messages(),
			Score:      score,
			Incomplete: scoring.Incomplete(form),
			Message:    "Please complete all required fields before generating.",
			MinScore:   g.MinScore,
		}
	}
	if err != nil {
		return req, err
	}

	if score < g.MinScore {
		return req, &Rejection{
			Reason:     InsufficientScore,
			Errors:     []string{},
			Score:      score,
			Incomplete: scoring.Incomplete(form),
			Message:    fmt.Sprintf("Your pitch score is %d%%. Reach at least %d%% to generate pitches.", score, g.MinScore),
			MinScore:   g.MinScore,
		}
	}
	return req, nil
}

// Allows reports whether a score passes the threshold, for previews.
func (g Generation) Allows(score int) bool {
	return score >= g.MinScore
}
