package model

// Section names of a generated result, in display order.
const (
	SectionPitch1    = "pitch_1"
	SectionPitch2    = "pitch_2"
	SectionPitch3    = "pitch_3"
	SectionFollowup1 = "followup_1"
	SectionFollowup2 = "followup_2"
	SectionFollowup3 = "followup_3"
)

// Sections lists every section name in display order.
var Sections = []string{
	SectionPitch1, SectionPitch2, SectionPitch3,
	SectionFollowup1, SectionFollowup2, SectionFollowup3,
}

// PitchVariant is one generated pitch email.
type PitchVariant struct {
	Style   string `json:"style"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Followup is one generated follow-up template.
type Followup struct {
	Timing  string `json:"timing"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Pitches is the full generation result.
type Pitches struct {
	Pitch1    PitchVariant `json:"pitch_1"`
	Pitch2    PitchVariant `json:"pitch_2"`
	Pitch3    PitchVariant `json:"pitch_3"`
	Followup1 Followup     `json:"followup_1"`
	Followup2 Followup     `json:"followup_2"`
	Followup3 Followup     `json:"followup_3"`
}

// Complete reports whether every section has a subject and a body.
func (p Pitches) Complete() bool {
	for _, v := range []PitchVariant{p.Pitch1, p.Pitch2, p.Pitch3} {
		if v.Subject == "" || v.Body == "" {
			return false
		}
	}
	for _, f := range []Followup{p.Followup1, p.Followup2, p.Followup3} {
		if f.Subject == "" || f.Body == "" {
			return false
		}
	}
	return true
}

// RevealedPitches is the visible subset of a result. Hidden sections are nil.
type RevealedPitches struct {
	Pitch1    *PitchVariant `json:"pitch_1,omitempty"`
	Pitch2    *PitchVariant `json:"pitch_2,omitempty"`
	Pitch3    *PitchVariant `json:"pitch_3,omitempty"`
	Followup1 *Followup     `json:"followup_1,omitempty"`
	Followup2 *Followup     `json:"followup_2,omitempty"`
	Followup3 *Followup     `json:"followup_3,omitempty"`
}
