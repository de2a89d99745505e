package scoring

import (
	"github.com/okian/pitchgate/internal/domain/model"
)

// FieldStatus is the completion view of one rule for a given form.
type FieldStatus struct {
	Field        string `json:"field"`
	Label        string `json:"label"`
	Points       int    `json:"points"`
	EarnedPoints int    `json:"earnedPoints"`
	Completed    bool   `json:"completed"`
	Optional     bool   `json:"isOptional"`
	Recommended  bool   `json:"isRecommended"`
	Hint         string `json:"hint"`
}

func statusOf(r Rule, form model.PitchForm) FieldStatus {
	done := r.Validate(form)
	earned := 0
	if done {
		earned = r.Points
	}
	return FieldStatus{
		Field:        r.Field,
		Label:        r.Label,
		Points:       r.Points,
		EarnedPoints: earned,
		Completed:    done,
		Optional:     r.Optional,
		Recommended:  r.Recommended,
		Hint:         r.Hint,
	}
}

// FieldStatuses reports every rule in table order.
func FieldStatuses(form model.PitchForm) []FieldStatus {
	out := make([]FieldStatus, len(rules))
	for i, r := range rules {
		out[i] = statusOf(r, form)
	}
	return out
}

// FieldStatusOf reports a single rule by field key.
func FieldStatusOf(form model.PitchForm, field string) (FieldStatus, error) {
	r, err := RuleFor(field)
	if err != nil {
		return FieldStatus{}, err
	}
	return statusOf(r, form), nil
}

// Incomplete lists the labels of unsatisfied rules, required ones first.
func Incomplete(form model.PitchForm) []string {
	var req, opt []string
	for _, r := range rules {
		if r.Validate(form) {
			continue
		}
		if r.Optional {
			opt = append(opt, r.Label)
		} else {
			req = append(req, r.Label)
		}
	}
	return append(req, opt...)
}
