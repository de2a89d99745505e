package validation_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/validation"
	. "github.com/smartystreets/goconvey/convey"
)

func validForm() model.PitchForm {
	return model.PitchForm{
		FirstName:      "  Ada ",
		LastName:       "Lovelace",
		Title:          model.Titles{"Founder", " Founder ", "Author", ""},
		Expertise:      "Analytical engines",
		Credibility:    "Wrote the first published algorithm for a machine",
		PodcastName:    "Engines Weekly",
		HostName:       "Charles",
		GuestName:      "Grace Hopper",
		EpisodeTopic:   "Compilers and their history",
		WhyPodcast:     "Your audience builds things and loves the history of computing as much as I do.",
		SocialPlatform: "LinkedIn",
		Followers:      "12,400",
		Topic1:         "Programming before computers",
		UniqueAngle:    "I bridge mathematics and imagination in ways engineers rarely hear",
	}
}

func TestValidate(t *testing.T) {
	Convey("Given a valid form without optional fields", t, func() {
		req, err := validation.Validate(validForm())

		Convey("Then it passes and is normalized", func() {
			So(err, ShouldBeNil)
			So(req.FirstName, ShouldEqual, "Ada")
			So(req.Name, ShouldEqual, "Ada Lovelace")
			So(req.Titles, ShouldResemble, []string{"Founder", "Author"})
			So(req.Title, ShouldEqual, "Founder, Author")
			So(req.Topic2, ShouldEqual, "")
			So(req.AudienceBenefit, ShouldEqual, "")
			So(req.FollowerCount, ShouldEqual, 12400)
			So(req.RoundedFollowers, ShouldEqual, "15,000")
			So(req.Topics(), ShouldResemble, []string{"Programming before computers"})
		})
	})

	Convey("Given a form missing several required fields", t, func() {
		f := validForm()
		f.LastName = " "
		f.Title = nil
		f.WhyPodcast = "too short"
		f.Topic2 = ""

		_, err := validation.Validate(f)

		Convey("Then every failure is reported in table order", func() {
			var verrs validation.Errors
			So(errors.As(err, &verrs), ShouldBeTrue)
			So(errors.Is(err, validation.ErrMissingRequiredFields), ShouldBeTrue)
			So(verrs.Labels(), ShouldResemble, []string{"Last Name", "Title/Role", "Why This Podcast?"})
			So(verrs.Messages()[0], ShouldEqual, "Last Name: Your last name")
			So(verrs.Messages()[2], ShouldEqual, "Why This Podcast?: Why you want to be on this show (at least 50 characters)")
		})
	})

	Convey("Given an empty form", t, func() {
		_, err := validation.Validate(model.PitchForm{})

		Convey("Then all fourteen required rules fail", func() {
			var verrs validation.Errors
			So(errors.As(err, &verrs), ShouldBeTrue)
			So(len(verrs), ShouldEqual, 14)
		})
	})
}

func TestFollowers(t *testing.T) {
	Convey("Given follower inputs", t, func() {
		Convey("Parsing accepts separators and leading digits", func() {
			cases := map[string]int{"12,400": 12400, "12 400": 12400, "1_000": 1000, "850": 850, "12k": 12, " 7 fans": 7}
			for in, want := range cases {
				n, ok := validation.ParseFollowers(in)
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, want)
			}
		})

		Convey("Parsing rejects non-numeric values", func() {
			for _, in := range []string{"", "lots", "-5", "k12"} {
				_, ok := validation.ParseFollowers(in)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("Rounding always goes up to the magnitude step", func() {
			vectors := map[int]int{
				0: 0, 1: 50, 50: 50, 51: 100, 999: 1000,
				1000: 1000, 1001: 1500, 9999: 10000,
				10000: 10000, 12400: 15000, 99999: 100000,
				100000: 100000, 100001: 125000, 1234567: 1250000,
			}
			for in, want := range vectors {
				So(validation.RoundFollowers(in), ShouldEqual, want)
			}
		})

		Convey("Huge counts are capped instead of overflowing", func() {
			for _, in := range []string{"9223372036854775807", "99999999999999999999999", "1,000,000,001"} {
				n, ok := validation.ParseFollowers(in)
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, validation.MaxFollowers)
			}
			So(validation.RoundFollowers(math.MaxInt), ShouldEqual, validation.MaxFollowers)
			So(validation.RoundFollowers(validation.MaxFollowers-1), ShouldEqual, validation.MaxFollowers)
			So(validation.FormatFollowers(math.MaxInt), ShouldEqual, "1,000,000,000")
		})

		Convey("Formatting uses thousands separators", func() {
			So(validation.FormatFollowers(9999), ShouldEqual, "10,000")
			So(validation.FormatFollowers(1234567), ShouldEqual, "1,250,000")
			So(validation.FormatFollowers(42), ShouldEqual, "50")
		})
	})
}
