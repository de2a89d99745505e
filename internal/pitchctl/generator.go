package pitchctl

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/scoring"
)

// SampleForm returns a form that passes every rule.
func SampleForm() model.PitchForm {
	return model.PitchForm{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Title:           model.Titles{"Founder", "Author"},
		Expertise:       "Analytical engines",
		Credibility:     "Wrote the first published algorithm for a machine",
		PodcastName:     "Engines Weekly",
		HostName:        "Charles",
		GuestName:       "Grace Hopper",
		EpisodeTopic:    "Compilers and their history",
		WhyPodcast:      "Your audience builds things and loves the history of computing as much as I do.",
		SocialPlatform:  "LinkedIn",
		Followers:       "12,400",
		Topic1:          "Programming before computers",
		Topic2:          "Poetical science",
		Topic3:          "Notes on notes",
		UniqueAngle:     "I bridge mathematics and imagination in ways engineers rarely hear",
		AudienceBenefit: "A fresh way to think about what machines can do",
	}
}

// sampleForms builds n forms with a random subset of fields cleared so the
// previews cover every score band.
func sampleForms(n int) []model.PitchForm {
	rules := scoring.Rules()
	forms := make([]model.PitchForm, n)
	for i := range forms {
		f := SampleForm()
		for _, r := range rules {
			if coin() {
				if r.Field == model.FieldTitle {
					f.Title = nil
					continue
				}
				f.SetText(r.Field, "")
			}
		}
		forms[i] = f
	}
	return forms
}

func coin() bool {
	n, err := rand.Int(rand.Reader, big.NewInt(2))
	return err == nil && n.Int64() == 1
}

// smokeEmail returns a unique throwaway address.
func smokeEmail() string {
	return "smoke+" + uuid.NewString()[:8] + "@example.com"
}
