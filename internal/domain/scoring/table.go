package scoring

// RuleInfo is the serializable view of a Rule.
type RuleInfo struct {
	Field       string `json:"field"`
	Label       string `json:"label"`
	Points      int    `json:"points"`
	Optional    bool   `json:"optional"`
	Recommended bool   `json:"recommended"`
	Hint        string `json:"hint"`
}

// Table describes the rule table for clients that render the form.
type Table struct {
	RulesVersion string     `json:"rulesVersion"`
	MaxScore     int        `json:"maxScore"`
	Rules        []RuleInfo `json:"rules"`
}

// Describe returns the current rule table.
func Describe() Table {
	infos := make([]RuleInfo, len(rules))
	for i, r := range rules {
		infos[i] = RuleInfo{
			Field:       r.Field,
			Label:       r.Label,
			Points:      r.Points,
			Optional:    r.Optional,
			Recommended: r.Recommended,
			Hint:        r.Hint,
		}
	}
	return Table{RulesVersion: RulesVersion, MaxScore: MaxScore, Rules: infos}
}
