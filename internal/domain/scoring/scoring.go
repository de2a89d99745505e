package scoring

import (
	"github.com/okian/pitchgate/internal/domain/model"
)

// Result is a request-scoped score evaluation.
type Result struct {
	EarnedPoints int `json:"earnedPoints"`
	MaxPoints    int `json:"maxPoints"`
	Percentage   int `json:"score"`
}

// Evaluate sums the points of every satisfied rule and normalizes against MaxScore.
func Evaluate(form model.PitchForm) Result {
	earned := 0
	for _, r := range rules {
		if r.Validate(form) {
			earned += r.Points
		}
	}
	return Result{
		EarnedPoints: earned,
		MaxPoints:    MaxScore,
		Percentage:   Percentage(earned, MaxScore),
	}
}

// Calculate returns the percentage score of form in [0,100].
func Calculate(form model.PitchForm) int {
	return Evaluate(form).Percentage
}

// Percentage rounds earned/max*100 half up and clamps to [0,100].
func Percentage(earned, maxPoints int) int {
	if maxPoints <= 0 || earned <= 0 {
		return 0
	}
	pct := (200*earned + maxPoints) / (2 * maxPoints)
	if pct > 100 {
		return 100
	}
	return pct
}
