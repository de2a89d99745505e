// Package validation checks required pitch fields and builds the normalized
// generation request.
package validation

import (
	"strings"

	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/scoring"
)

// Validate trims the form, derives follower display values and checks every
// required rule. All failing rules are reported, in table order.
func Validate(form model.PitchForm) (model.GenerationRequest, error) {
	req := Normalize(form)

	var errs Errors
	for _, r := range scoring.Rules() {
		if r.Optional || r.Validate(form) {
			continue
		}
		errs = append(errs, FieldError{Field: r.Field, Label: r.Label, Hint: r.Hint})
	}
	if len(errs) > 0 {
		return req, errs
	}
	return req, nil
}

// Normalize builds the generation request without checking any rule.
func Normalize(form model.PitchForm) model.GenerationRequest {
	t := strings.TrimSpace
	titles := form.Title.Normalized()

	req := model.GenerationRequest{
		FirstName:       t(form.FirstName),
		LastName:        t(form.LastName),
		Titles:          titles,
		Title:           form.Title.Joined(),
		Expertise:       t(form.Expertise),
		Credibility:     t(form.Credibility),
		PodcastName:     t(form.PodcastName),
		HostName:        t(form.HostName),
		GuestName:       t(form.GuestName),
		EpisodeTopic:    t(form.EpisodeTopic),
		WhyPodcast:      t(form.WhyPodcast),
		SocialPlatform:  t(form.SocialPlatform),
		Topic1:          t(form.Topic1),
		Topic2:          t(form.Topic2),
		Topic3:          t(form.Topic3),
		UniqueAngle:     t(form.UniqueAngle),
		AudienceBenefit: t(form.AudienceBenefit),
	}
	req.Name = strings.TrimSpace(req.FirstName + " " + req.LastName)

	if n, ok := ParseFollowers(string(form.Followers)); ok {
		req.FollowerCount = n
		req.RoundedFollowers = FormatFollowers(n)
	}
	return req
}
