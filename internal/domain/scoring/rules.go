// Package scoring holds the pitch rule table and every computation derived
// from it. All evaluation paths (preview, generation gate, tools) share the
// table below.
package scoring

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/okian/pitchgate/internal/domain/model"
)

// RulesVersion identifies the rule table. Bump it whenever a rule, weight or
// threshold changes so clients can detect a stale preview.
const RulesVersion = "2025-01.v1"

// Minimum trimmed lengths for the quality-gated fields. A value must be
// strictly longer than the threshold to count.
const (
	CredibilityMinLength  = 20
	EpisodeTopicMinLength = 10
	WhyPodcastMinLength   = 50
	UniqueAngleMinLength  = 30
)

// Rule is one scorable field.
type Rule struct {
	Field       string
	Label       string
	Points      int
	Validate    func(model.PitchForm) bool
	Optional    bool
	Recommended bool
	Hint        string
}

var rules = []Rule{
	// About you
	required(model.FieldFirstName, "First Name", 5, "Your first name"),
	required(model.FieldLastName, "Last Name", 5, "Your last name"),
	{
		Field:    model.FieldTitle,
		Label:    "Title/Role",
		Points:   5,
		Validate: func(f model.PitchForm) bool { return len(f.Title.Normalized()) > 0 },
		Hint:     "Your professional title(s)",
	},
	required(model.FieldExpertise, "Expertise", 10, "Your area of expertise"),
	longerThan(model.FieldCredibility, "Credibility", 15, CredibilityMinLength, "Your biggest achievement"),

	// About the podcast
	required(model.FieldPodcastName, "Podcast Name", 5, "Name of the podcast"),
	required(model.FieldHostName, "Host Name", 5, "Name of the podcast host"),
	required(model.FieldGuestName, "Recent Guest", 15, "Name a guest from a recent episode"),
	longerThan(model.FieldEpisodeTopic, "Episode Topic", 10, EpisodeTopicMinLength, "What they discussed"),
	longerThan(model.FieldWhyPodcast, "Why This Podcast?", 20, WhyPodcastMinLength, "Why you want to be on this show"),

	// Your value
	required(model.FieldTopic1, "Topic Idea 1", 10, "First topic you could discuss"),
	bonus(model.FieldTopic2, "Topic Idea 2", 5, "Second topic (bonus points)"),
	bonus(model.FieldTopic3, "Topic Idea 3", 5, "Third topic (bonus points)"),
	longerThan(model.FieldUniqueAngle, "Unique Angle", 15, UniqueAngleMinLength, "What makes your perspective different"),

	// Audience
	required(model.FieldSocialPlatform, "Social Platform", 5, "Your primary social platform"),
	required(model.FieldFollowers, "Follower Count", 10, "Your audience size"),
}

// MaxScore is the sum of every rule's points.
var MaxScore = func() int {
	total := 0
	for _, r := range rules {
		total += r.Points
	}
	return total
}()

var ruleIndex = func() map[string]int {
	idx := make(map[string]int, len(rules))
	for i, r := range rules {
		idx[r.Field] = i
	}
	return idx
}()

// Rules returns a copy of the rule table in display order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// RuleFor returns the rule for a field key.
func RuleFor(field string) (Rule, error) {
	i, ok := ruleIndex[field]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return rules[i], nil
}

// TextLength counts the characters of s after trimming surrounding whitespace.
func TextLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func textOf(field string) func(model.PitchForm) string {
	return func(f model.PitchForm) string {
		v, _ := f.Text(field)
		return v
	}
}

func required(field, label string, points int, hint string) Rule {
	get := textOf(field)
	return Rule{
		Field:    field,
		Label:    label,
		Points:   points,
		Validate: func(f model.PitchForm) bool { return TextLength(get(f)) > 0 },
		Hint:     hint,
	}
}

func bonus(field, label string, points int, hint string) Rule {
	r := required(field, label, points, hint)
	r.Optional = true
	r.Recommended = true
	return r
}

func longerThan(field, label string, points, minLen int, hint string) Rule {
	get := textOf(field)
	return Rule{
		Field:    field,
		Label:    label,
		Points:   points,
		Validate: func(f model.PitchForm) bool { return TextLength(get(f)) > minLen },
		Hint:     fmt.Sprintf("%s (at least %d characters)", hint, minLen),
	}
}
