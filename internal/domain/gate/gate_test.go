package gate_test

import (
	"errors"
	"testing"

	"github.com/okian/pitchgate/internal/domain/gate"
	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func requiredOnly() model.PitchForm {
	return model.PitchForm{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Title:          model.Titles{"Founder"},
		Expertise:      "Analytical engines",
		Credibility:    "Wrote the first published algorithm for a machine",
		PodcastName:    "Engines Weekly",
		HostName:       "Charles",
		GuestName:      "Grace Hopper",
		EpisodeTopic:   "Compilers and their history",
		WhyPodcast:     "Your audience builds things and loves the history of computing as much as I do.",
		SocialPlatform: "LinkedIn",
		Followers:      "900",
		Topic1:         "Programming before computers",
		UniqueAngle:    "I bridge mathematics and imagination in ways engineers rarely hear",
	}
}

func TestGenerationGate(t *testing.T) {
	Convey("Given the default generation gate", t, func() {
		g := gate.NewGeneration(gate.DefaultMinScore)

		Convey("When every required field passes", func() {
			req, err := g.Evaluate(requiredOnly())

			Convey("Then generation is allowed", func() {
				So(err, ShouldBeNil)
				So(req.Name, ShouldEqual, "Ada Lovelace")
				So(req.RoundedFollowers, ShouldEqual, "900")
			})
		})

		Convey("When required fields are missing", func() {
			f := requiredOnly()
			f.GuestName = ""
			f.Credibility = "short"
			_, err := g.Evaluate(f)

			Convey("Then the rejection lists every missing field with the score", func() {
				var rej *gate.Rejection
				So(errors.As(err, &rej), ShouldBeTrue)
				So(errors.Is(err, gate.ErrMissingRequiredFields), ShouldBeTrue)
				So(errors.Is(err, gate.ErrInsufficientScore), ShouldBeFalse)
				So(rej.Reason, ShouldEqual, gate.MissingRequiredFields)
				So(rej.Errors, ShouldResemble, []string{
					"Credibility: Your biggest achievement (at least 20 characters)",
					"Recent Guest: Name a guest from a recent episode",
				})
				So(rej.Score, ShouldEqual, scoring.Calculate(f))
				So(rej.Incomplete, ShouldResemble, []string{"Credibility", "Recent Guest", "Topic Idea 2", "Topic Idea 3"})
			})
		})

		Convey("When missing fields and a low score both apply", func() {
			_, err := g.Evaluate(model.PitchForm{FirstName: "Ada"})

			Convey("Then missing fields take precedence and still carry the score", func() {
				var rej *gate.Rejection
				So(errors.As(err, &rej), ShouldBeTrue)
				So(rej.Reason, ShouldEqual, gate.MissingRequiredFields)
				So(rej.Score, ShouldEqual, 4)
				So(len(rej.Errors), ShouldEqual, 13)
			})
		})

		Convey("When the threshold exceeds a complete required set", func() {
			strict := gate.NewGeneration(95)
			_, err := strict.Evaluate(requiredOnly())

			Convey("Then the score rejection carries the score and message", func() {
				var rej *gate.Rejection
				So(errors.As(err, &rej), ShouldBeTrue)
				So(errors.Is(err, gate.ErrInsufficientScore), ShouldBeTrue)
				So(rej.Errors, ShouldBeEmpty)
				So(rej.Score, ShouldEqual, 93)
				So(rej.Message, ShouldEqual, "Your pitch score is 93%. Reach at least 95% to generate pitches.")
			})
		})

		Convey("When the threshold is out of range", func() {
			So(gate.NewGeneration(150).MinScore, ShouldEqual, gate.DefaultMinScore)
			So(gate.NewGeneration(-1).MinScore, ShouldEqual, gate.DefaultMinScore)
		})

		Convey("Allows compares against the full maximum", func() {
			So(g.Allows(scoring.Percentage(70, scoring.MaxScore)), ShouldBeTrue)
			So(g.Allows(scoring.Percentage(69, scoring.MaxScore)), ShouldBeFalse)
		})
	})
}

func TestRevealGate(t *testing.T) {
	Convey("Given a generated result", t, func() {
		p := model.Pitches{
			Pitch1:    model.PitchVariant{Subject: "one"},
			Pitch2:    model.PitchVariant{Subject: "two"},
			Pitch3:    model.PitchVariant{Subject: "three"},
			Followup1: model.Followup{Timing: "5-7 days"},
			Followup2: model.Followup{Timing: "10-14 days"},
			Followup3: model.Followup{Timing: "21 days"},
		}

		Convey("When unverified", func() {
			r := gate.Reveal(p, false)

			Convey("Then only the first pitch is visible", func() {
				So(r.Pitch1.Subject, ShouldEqual, "one")
				So(r.Pitch2, ShouldBeNil)
				So(r.Pitch3, ShouldBeNil)
				So(r.Followup1, ShouldBeNil)
				So(r.Followup3, ShouldBeNil)
				So(gate.LockedSections(false), ShouldResemble,
					[]string{"pitch_2", "pitch_3", "followup_1", "followup_2", "followup_3"})
				So(append([]string{model.SectionPitch1}, gate.LockedSections(false)...), ShouldResemble, model.Sections)
			})
		})

		Convey("When verified", func() {
			r := gate.Reveal(p, true)

			Convey("Then every section is visible", func() {
				So(r.Pitch3.Subject, ShouldEqual, "three")
				So(r.Followup3.Timing, ShouldEqual, "21 days")
				So(gate.LockedSections(true), ShouldBeEmpty)
			})
		})

		Convey("Verification never changes the score and score never unlocks content", func() {
			f := requiredOnly()
			f.Topic2, f.Topic3 = "Poetical science", "Notes on notes"
			before := scoring.Calculate(f)
			_ = gate.Reveal(p, true)
			So(scoring.Calculate(f), ShouldEqual, before)
			So(before, ShouldEqual, 100)
			So(gate.Reveal(p, false).Pitch2, ShouldBeNil)
		})
	})
}

func TestPreview(t *testing.T) {
	Convey("Given a gate with the default threshold", t, func() {
		g := gate.NewGeneration(gate.DefaultMinScore)

		Convey("When previewing an empty form", func() {
			p := g.Preview(model.PitchForm{})

			Convey("Then nothing is earned and every rule is incomplete", func() {
				So(p.Percentage, ShouldEqual, 0)
				So(p.MaxPoints, ShouldEqual, scoring.MaxScore)
				So(p.Name, ShouldEqual, scoring.BandWeak)
				So(p.CanGenerate, ShouldBeFalse)
				So(len(p.IncompleteFields), ShouldEqual, len(scoring.Rules()))
				So(len(p.Fields), ShouldEqual, len(scoring.Rules()))
			})
		})

		Convey("When previewing the required set", func() {
			p := g.Preview(requiredOnly())

			Convey("Then the score, band and threshold agree with Evaluate", func() {
				So(p.Percentage, ShouldEqual, 93)
				So(p.EarnedPoints, ShouldEqual, 130)
				So(p.Name, ShouldEqual, scoring.BandExcellent)
				So(p.Sparkle, ShouldBeTrue)
				So(p.CanGenerate, ShouldBeTrue)
				So(p.MinScore, ShouldEqual, gate.DefaultMinScore)
				So(p.RulesVersion, ShouldEqual, scoring.RulesVersion)
				So(p.IncompleteFields, ShouldResemble, []string{"Topic Idea 2", "Topic Idea 3"})
			})
		})
	})
}

func TestDescribe(t *testing.T) {
	Convey("The rule table description mirrors the rules", t, func() {
		tbl := scoring.Describe()
		So(tbl.MaxScore, ShouldEqual, 140)
		So(tbl.RulesVersion, ShouldEqual, scoring.RulesVersion)
		So(len(tbl.Rules), ShouldEqual, 16)
		So(tbl.Rules[0].Field, ShouldEqual, model.FieldFirstName)
		So(tbl.Rules[11].Optional, ShouldBeTrue)
	})
}
