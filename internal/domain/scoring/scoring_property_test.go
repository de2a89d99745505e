package scoring_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/scoring"
)

var textFields = []string{
	model.FieldFirstName, model.FieldLastName, model.FieldExpertise, model.FieldCredibility,
	model.FieldPodcastName, model.FieldHostName, model.FieldGuestName, model.FieldEpisodeTopic,
	model.FieldWhyPodcast, model.FieldSocialPlatform, model.FieldFollowers, model.FieldTopic1,
	model.FieldTopic2, model.FieldTopic3, model.FieldUniqueAngle, model.FieldAudienceBenefit,
}

// formFrom builds a form from generated values; missing entries stay empty.
func formFrom(values []string, titles []string) model.PitchForm {
	var f model.PitchForm
	for i, field := range textFields {
		if i < len(values) {
			f.SetText(field, values[i])
		}
	}
	f.Title = titles
	return f
}

func formGen() gopter.Gen {
	return gopter.CombineGens(
		gen.SliceOfN(len(textFields), gen.OneGenOf(gen.Const(""), gen.AlphaString(), gen.Const(" \t "))),
		gen.SliceOf(gen.AlphaString()),
	).Map(func(v []any) model.PitchForm {
		return formFrom(v[0].([]string), v[1].([]string))
	})
}

func TestScoreProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("score stays within [0,100]", prop.ForAll(
		func(f model.PitchForm) bool {
			pct := scoring.Calculate(f)
			return pct >= 0 && pct <= 100
		},
		formGen(),
	))

	properties.Property("scoring is idempotent", prop.ForAll(
		func(f model.PitchForm) bool {
			return scoring.Evaluate(f) == scoring.Evaluate(f)
		},
		formGen(),
	))

	properties.Property("filling an empty field never lowers the score", prop.ForAll(
		func(f model.PitchForm, idx int, value string) bool {
			field := textFields[idx]
			f.SetText(field, "")
			before := scoring.Evaluate(f).EarnedPoints
			f.SetText(field, value)
			return scoring.Evaluate(f).EarnedPoints >= before
		},
		formGen(),
		gen.IntRange(0, len(textFields)-1),
		gen.AlphaString(),
	))

	properties.Property("statuses agree with the calculator", prop.ForAll(
		func(f model.PitchForm) bool {
			earned := 0
			for _, st := range scoring.FieldStatuses(f) {
				earned += st.EarnedPoints
			}
			return earned == scoring.Evaluate(f).EarnedPoints
		},
		formGen(),
	))

	properties.TestingRun(t)
}

func TestPercentageRounding(t *testing.T) {
	// Vectors computed as round(earned/140*100) with halves rounded up.
	vectors := map[int]int{0: 0, 1: 1, 5: 4, 7: 5, 15: 11, 35: 25, 40: 29, 70: 50, 130: 93, 139: 99, 140: 100}
	for earned, want := range vectors {
		require.Equal(t, want, scoring.Percentage(earned, 140), "earned=%d", earned)
	}
	require.Equal(t, 100, scoring.Percentage(200, 140))
	require.Equal(t, 0, scoring.Percentage(-5, 140))
	require.Equal(t, 0, scoring.Percentage(5, 0))
}
