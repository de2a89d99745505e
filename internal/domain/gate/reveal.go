package gate

import (
	"github.com/okian/pitchgate/internal/domain/model"
)

// Reveal returns the sections visible for the verification state. Only the
// first pitch is shown until the email is verified. Score plays no part.
func Reveal(p model.Pitches, verified bool) model.RevealedPitches {
	out := model.RevealedPitches{Pitch1: &p.Pitch1}
	if !verified {
		return out
	}
	out.Pitch2 = &p.Pitch2
	out.Pitch3 = &p.Pitch3
	out.Followup1 = &p.Followup1
	out.Followup2 = &p.Followup2
	out.Followup3 = &p.Followup3
	return out
}

// LockedSections names the sections hidden for the verification state.
func LockedSections(verified bool) []string {
	locked := []string{}
	if verified {
		return locked
	}
	for _, s := range model.Sections {
		if s != model.SectionPitch1 {
			locked = append(locked, s)
		}
	}
	return locked
}
