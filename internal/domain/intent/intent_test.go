package intent_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/HRehwald/PoolChat/internal/domain/intent"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyIntent(t *testing.T) {
	Convey("Given the keyword intent classifier", t, func() {
		Convey("When the question has no keyword hits", func() {
			in, conf := intent.ClassifyIntent("blorp")

			Convey("Then it falls back to unknown with 0.20", func() {
				So(in, ShouldEqual, intent.Unknown)
				So(conf, ShouldEqual, 0.20)
			})
		})

		Convey("When the question is empty", func() {
			in, conf := intent.ClassifyIntent("")

			Convey("Then it is unknown rather than an error", func() {
				So(in, ShouldEqual, intent.Unknown)
				So(conf, ShouldEqual, intent.ConfidenceNone)
			})
		})

		Convey("When exactly one keyword hits", func() {
			in, conf := intent.ClassifyIntent("Is there parking?")

			Convey("Then confidence is 0.60", func() {
				So(in, ShouldEqual, intent.AmenityAvailability)
				So(conf, ShouldEqual, 0.60)
			})
		})

		Convey("When two keywords hit", func() {
			in, conf := intent.ClassifyIntent("What are your lap swim hours on Saturday?")

			Convey("Then confidence is 0.75", func() {
				So(in, ShouldEqual, intent.ScheduleInquiry)
				So(conf, ShouldEqual, 0.75)
			})
		})

		Convey("When three or more keywords hit", func() {
			in, conf := intent.ClassifyIntent("When does the pool open on Sunday morning?")

			Convey("Then confidence saturates at 0.90", func() {
				So(in, ShouldEqual, intent.ScheduleInquiry)
				So(conf, ShouldEqual, 0.90)
			})
		})

		Convey("When two intents tie", func() {
			in, conf := intent.ClassifyIntent("phone hours")

			Convey("Then the earlier intent wins", func() {
				So(in, ShouldEqual, intent.ScheduleInquiry)
				So(conf, ShouldEqual, 0.60)
			})
		})

		Convey("When one keyword repeats", func() {
			_, conf := intent.ClassifyIntent("hours hours hours")

			Convey("Then it counts once", func() {
				So(conf, ShouldEqual, 0.60)
			})
		})

		Convey("When a short keyword hides inside another word", func() {
			in, conf := intent.ClassifyIntent("Which page lists fees?")

			Convey("Then the substring still matches", func() {
				So(in, ShouldEqual, intent.EligibilityInquiry)
				So(conf, ShouldEqual, 0.60)
			})
		})

		Convey("When casing differs", func() {
			lower, lowerConf := intent.ClassifyIntent("when do you open")
			upper, upperConf := intent.ClassifyIntent("WHEN DO YOU OPEN")

			Convey("Then classification is case-insensitive", func() {
				So(upper, ShouldEqual, lower)
				So(upperConf, ShouldEqual, lowerConf)
			})
		})
	})
}

func TestExtractEntities(t *testing.T) {
	Convey("Given the entity extractor", t, func() {
		Convey("When nothing matches", func() {
			entities := intent.ExtractEntities("blorp")

			Convey("Then the result is exactly [unknown]", func() {
				So(entities, ShouldResemble, []intent.Entity{intent.EntityUnknown})
			})
		})

		Convey("When a single entity matches", func() {
			entities := intent.ExtractEntities("What are your lap swim hours on Saturday?")

			Convey("Then it is the only entity", func() {
				So(entities, ShouldResemble, []intent.Entity{intent.EntityLapSwim})
			})
		})

		Convey("When several entities match", func() {
			entities := intent.ExtractEntities("Can my teen use the deep end lanes?")

			Convey("Then they come back in table order", func() {
				So(entities, ShouldResemble, []intent.Entity{
					intent.EntityLapSwim,
					intent.EntityTeenLapSwim,
					intent.EntitySafety,
					intent.EntityDeepWater,
				})
			})
		})

		Convey("When the question is upper-case", func() {
			entities := intent.ExtractEntities("SWIM LESSONS?")

			Convey("Then matching ignores case", func() {
				So(entities, ShouldResemble, []intent.Entity{intent.EntityLessons})
			})
		})

		Convey("When a short keyword hides inside another word", func() {
			entities := intent.ExtractEntities("Which page lists fees?")

			Convey("Then the substring match is kept", func() {
				So(entities, ShouldResemble, []intent.Entity{intent.EntityAge})
			})
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given a question about teen lap swim", t, func() {
		c := intent.Classify("When is teen lap swim?")

		Convey("Then the bundle carries intent, confidence and entities", func() {
			So(c.Intent, ShouldEqual, intent.ScheduleInquiry)
			So(c.Confidence, ShouldEqual, 0.60)
			So(c.Entities, ShouldResemble, []intent.Entity{intent.EntityLapSwim, intent.EntityTeenLapSwim})
			So(c.Primary(), ShouldEqual, intent.EntityLapSwim)
		})

		Convey("And it marshals with wire labels", func() {
			raw, err := json.Marshal(c)
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"intent":"schedule_inquiry","confidence":0.6,"entities":["lap_swim","teen_lap_swim"]}`)
		})
	})

	Convey("Given an empty classification", t, func() {
		Convey("Then the primary entity is unknown", func() {
			So(intent.Classification{}.Primary(), ShouldEqual, intent.EntityUnknown)
		})
	})
}

func TestLabels(t *testing.T) {
	Convey("Given wire labels", t, func() {
		Convey("When parsing a known intent", func() {
			in, err := intent.ParseIntent("registration_inquiry")
			So(err, ShouldBeNil)
			So(in, ShouldEqual, intent.RegistrationInquiry)
			So(in.String(), ShouldEqual, "registration_inquiry")
		})

		Convey("When parsing an unknown intent", func() {
			_, err := intent.ParseIntent("weather_inquiry")
			So(errors.Is(err, intent.ErrUnknownLabel), ShouldBeTrue)
		})

		Convey("When parsing an entity", func() {
			e, err := intent.ParseEntity("teen_lap_swim")
			So(err, ShouldBeNil)
			So(e, ShouldEqual, intent.EntityTeenLapSwim)
			So(e.DisplayName(), ShouldEqual, "teen lap swim")
		})

		Convey("When listing every label", func() {
			So(intent.Labels(), ShouldHaveLength, 8)
			So(intent.Labels()[0], ShouldEqual, "schedule_inquiry")
			So(intent.Labels(), ShouldNotContain, "unknown")
			So(intent.EntityLabels(), ShouldContain, "teen_lap_swim")
			So(intent.EntityLabels(), ShouldNotContain, "unknown")
		})

		Convey("When an out-of-range value is printed", func() {
			So(intent.Intent(200).String(), ShouldEqual, "unknown")
			So(intent.Entity(200).String(), ShouldEqual, "unknown")
		})

		Convey("Then only official intents prefer the website", func() {
			So(intent.ScheduleInquiry.Official(), ShouldBeTrue)
			So(intent.PolicyInquiry.Official(), ShouldBeTrue)
			So(intent.EligibilityInquiry.Official(), ShouldBeTrue)
			So(intent.RegistrationInquiry.Official(), ShouldBeTrue)
			So(intent.AmenityInquiry.Official(), ShouldBeFalse)
			So(intent.ContactInquiry.Official(), ShouldBeFalse)
			So(intent.Unknown.Official(), ShouldBeFalse)
		})
	})
}
