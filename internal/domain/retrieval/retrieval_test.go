package retrieval_test

import (
	"testing"

	"github.com/HRehwald/PoolChat/internal/domain/intent"
	"github.com/HRehwald/PoolChat/internal/domain/model"
	"github.com/HRehwald/PoolChat/internal/domain/retrieval"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-9

func TestScoreOverlap(t *testing.T) {
	Convey("Given the overlap scorer", t, func() {
		Convey("When the text is empty", func() {
			Convey("Then the score is zero for any query", func() {
				So(retrieval.ScoreOverlap("What are your hours?", "", nil), ShouldEqual, 0)
				So(retrieval.ScoreOverlap("", "", nil), ShouldEqual, 0)
			})
		})

		Convey("When the text has no tokens", func() {
			Convey("Then boosts are not applied either", func() {
				So(retrieval.ScoreOverlap("fee", "!!! ---", []string{"fee"}), ShouldEqual, 0)
			})
		})

		Convey("When the query is short", func() {
			score := retrieval.ScoreOverlap("lap swim hours", "Lap swim hours: Mon", nil)

			Convey("Then the denominator is floored at 6", func() {
				So(score, ShouldAlmostEqual, 3.0/6.0, epsilon)
			})
		})

		Convey("When the query is long", func() {
			score := retrieval.ScoreOverlap("a b c d e f g h", "a b", nil)

			Convey("Then the denominator is the query token count", func() {
				So(score, ShouldAlmostEqual, 2.0/8.0, epsilon)
			})
		})

		Convey("When punctuation separates tokens", func() {
			score := retrieval.ScoreOverlap("fri 9am", "Mon–Fri 6–9am", nil)

			Convey("Then the pieces match as separate tokens", func() {
				So(score, ShouldAlmostEqual, 2.0/6.0, epsilon)
			})
		})

		Convey("When two boost terms appear but no content tokens match", func() {
			score := retrieval.ScoreOverlap("fee pass", "zzz", []string{"fee", "pass"})

			Convey("Then the boosts add up to 0.30", func() {
				So(score, ShouldAlmostEqual, 0.30, epsilon)
			})
		})

		Convey("When many boosts stack on a perfect overlap", func() {
			q := "lap swim lane adult morning evening hours"
			score := retrieval.ScoreOverlap(q, q, retrieval.CategoryBoosts("lap_swim"))

			Convey("Then the score is not capped at 1", func() {
				So(score, ShouldAlmostEqual, 1.0+7*0.15, epsilon)
				So(score, ShouldBeGreaterThan, 1.0)
			})
		})

		Convey("When a boost term is punctuation", func() {
			score := retrieval.ScoreOverlap("is it $5?", "5 dollars", []string{"$"})

			Convey("Then it matches the raw query text", func() {
				So(score, ShouldAlmostEqual, 1.0/6.0+0.15, epsilon)
			})
		})

		Convey("When a boost term is empty", func() {
			score := retrieval.ScoreOverlap("hours", "hours", []string{""})

			Convey("Then it is ignored", func() {
				So(score, ShouldAlmostEqual, 1.0/6.0, epsilon)
			})
		})
	})
}

func TestTokenize(t *testing.T) {
	Convey("Given mixed text", t, func() {
		tokens := retrieval.Tokenize("Lap-Swim: 6AM, lap swim!")

		Convey("Then tokens are lower-case, unique alphanumeric runs", func() {
			So(tokens, ShouldResemble, map[string]struct{}{"lap": {}, "swim": {}, "6am": {}})
		})
	})
}

func TestRetrieve(t *testing.T) {
	Convey("Given a website chunk about lap swim", t, func() {
		chunks := []model.KnowledgeChunk{{
			Text:     "Lap swim hours: Mon–Fri 6–9am, Sat 8–11am",
			Category: "lap_swim",
			Title:    "Lap Swim",
			Source:   model.SourceWebsite,
		}}

		Convey("When asking about Saturday lap swim hours", func() {
			c := retrieval.Retrieve("What are your lap swim hours on Saturday?", intent.ScheduleInquiry, intent.EntityLapSwim, chunks, &model.KnowledgeBase{})

			Convey("Then the chunk wins with overlap plus category boosts", func() {
				So(c.Answer, ShouldEqual, "Lap swim hours: Mon–Fri 6–9am, Sat 8–11am")
				So(c.Source, ShouldEqual, "Website: Lap Swim")
				So(c.Confidence, ShouldAlmostEqual, 3.0/8.0+3*0.15, epsilon)
				So(c.Provenance, ShouldNotBeNil)
				So(c.Provenance.Chunk, ShouldPointTo, &chunks[0])
			})
		})

		Convey("When the chunk has no title", func() {
			chunks[0].Title = ""
			c := retrieval.Retrieve("lap swim", intent.ScheduleInquiry, intent.EntityLapSwim, chunks, nil)

			Convey("Then the label falls back to curated content", func() {
				So(c.Source, ShouldEqual, "Website: curated content")
			})
		})

		Convey("When the chunk is not tagged as website", func() {
			chunks[0].Source = ""
			c := retrieval.Retrieve("lap swim", intent.ScheduleInquiry, intent.EntityLapSwim, chunks, nil)

			Convey("Then it is labelled as staff notes", func() {
				So(c.Source, ShouldEqual, "Staff notes (structured)")
			})
		})
	})

	Convey("Given empty corpora", t, func() {
		c := retrieval.Retrieve("Where do I park?", intent.LocationInquiry, intent.EntityUnknown, nil, &model.KnowledgeBase{})

		Convey("Then the candidate is empty", func() {
			So(c.Empty(), ShouldBeTrue)
			So(c.Source, ShouldEqual, "")
			So(c.Confidence, ShouldEqual, 0)
			So(c.Provenance, ShouldBeNil)
		})
	})

	Convey("Given chunks that share no tokens with the question", t, func() {
		chunks := []model.KnowledgeChunk{{Text: "zzz", Category: "rules", Source: model.SourceWebsite}}
		c := retrieval.Retrieve("hours", intent.ScheduleInquiry, intent.EntityUnknown, chunks, nil)

		Convey("Then a zero score never wins", func() {
			So(c.Empty(), ShouldBeTrue)
		})
	})

	Convey("Given two equally scored chunks", t, func() {
		chunks := []model.KnowledgeChunk{
			{Text: "towels available", Title: "First", Source: model.SourceWebsite},
			{Text: "towels available", Title: "Second", Source: model.SourceWebsite},
		}
		c := retrieval.Retrieve("towels", intent.Unknown, intent.EntityUnknown, chunks, nil)

		Convey("Then the first one is kept", func() {
			So(c.Source, ShouldEqual, "Website: First")
		})
	})

	Convey("Given a structured entry", t, func() {
		kb := &model.KnowledgeBase{Entries: []model.KnowledgeEntry{{
			ID:       "fees-1",
			Intent:   "policy_inquiry",
			Question: "How much is a day pass?",
			Answer:   "  A day pass is $5.  ",
			Entities: []string{"fees"},
		}}}

		c := retrieval.Retrieve("How much is a day pass?", intent.Unknown, intent.EntityUnknown, nil, kb)

		Convey("Then its trimmed answer is returned with the staff label", func() {
			So(c.Answer, ShouldEqual, "A day pass is $5.")
			So(c.Source, ShouldEqual, "Staff notes (structured)")
			So(c.Confidence, ShouldAlmostEqual, 1.0, epsilon)
			So(c.Provenance.Source, ShouldEqual, model.SourceStructured)
			So(c.Provenance.Entry.ID, ShouldEqual, "fees-1")
		})
	})

	Convey("Given a structured entry without an answer", t, func() {
		kb := &model.KnowledgeBase{Entries: []model.KnowledgeEntry{{Question: "  pool towels  "}}}
		c := retrieval.Retrieve("pool towels", intent.Unknown, intent.EntityUnknown, nil, kb)

		Convey("Then the matched text is used instead", func() {
			So(c.Answer, ShouldEqual, "pool towels")
		})
	})

	Convey("Given two structured entries that differ only in declared entities", t, func() {
		kb := &model.KnowledgeBase{Entries: []model.KnowledgeEntry{
			{ID: "plain", Question: "rules for lanes", Answer: "Answer A."},
			{ID: "tagged", Question: "rules for lanes", Answer: "Answer B.", Entities: []string{"lap_swim"}},
		}}

		Convey("When the primary entity is declared by one entry", func() {
			c := retrieval.Retrieve("lap swim rules", intent.PolicyInquiry, intent.EntityLapSwim, nil, kb)

			Convey("Then that entry gets the entity boost", func() {
				So(c.Provenance.Entry.ID, ShouldEqual, "tagged")
				So(c.Confidence, ShouldAlmostEqual, 1.0/6.0+0.15, epsilon)
			})
		})

		Convey("When the primary entity is unknown", func() {
			c := retrieval.Retrieve("lap swim rules", intent.PolicyInquiry, intent.EntityUnknown, nil, kb)

			Convey("Then the tie keeps the first entry", func() {
				So(c.Provenance.Entry.ID, ShouldEqual, "plain")
			})
		})
	})

	Convey("Given a website chunk trailing a staff entry by less than 0.10", t, func() {
		question := "a1 a2 a3 a4 a5 a6 a7 a8 a9 a10 a11 a12"
		chunks := []model.KnowledgeChunk{{Text: "a1 a2 a3", Title: "Site", Source: model.SourceWebsite}}
		kb := &model.KnowledgeBase{Entries: []model.KnowledgeEntry{{ID: "e1", Question: "a1 a2 a3 a4", Answer: "staff answer"}}}

		Convey("When the intent is official", func() {
			c := retrieval.Retrieve(question, intent.ScheduleInquiry, intent.EntityUnknown, chunks, kb)

			Convey("Then the website wins", func() {
				So(c.Source, ShouldEqual, "Website: Site")
				So(c.Confidence, ShouldAlmostEqual, 3.0/12.0, epsilon)
			})
		})

		Convey("When the intent is not official", func() {
			c := retrieval.Retrieve(question, intent.AmenityInquiry, intent.EntityUnknown, chunks, kb)

			Convey("Then the higher staff score wins", func() {
				So(c.Source, ShouldEqual, "Staff notes (structured)")
				So(c.Answer, ShouldEqual, "staff answer")
				So(c.Confidence, ShouldAlmostEqual, 4.0/12.0, epsilon)
			})
		})

		Convey("When the margin is configured to zero", func() {
			r := retrieval.New(retrieval.WithOfficialMargin(0))
			c := r.Retrieve(question, intent.ScheduleInquiry, intent.EntityUnknown, chunks, kb)

			Convey("Then official intents compare raw scores", func() {
				So(c.Source, ShouldEqual, "Staff notes (structured)")
			})
		})
	})

	Convey("Given a website chunk and staff entry with equal scores", t, func() {
		chunks := []model.KnowledgeChunk{{Text: "a1 a2 a3", Source: model.SourceWebsite}}
		kb := &model.KnowledgeBase{Entries: []model.KnowledgeEntry{{Question: "a1 a2 a3"}}}
		c := retrieval.Retrieve("a1 a2 a3", intent.ContactInquiry, intent.EntityUnknown, chunks, kb)

		Convey("Then the website wins the tie", func() {
			So(c.Source, ShouldEqual, "Website: curated content")
		})
	})

	Convey("Given a custom boost table", t, func() {
		r := retrieval.New(retrieval.WithCategoryBoosts(map[string][]string{"towels": {"towel"}}))
		chunks := []model.KnowledgeChunk{{Text: "rentals at the desk", Category: "towels", Source: model.SourceWebsite}}
		c := r.Retrieve("towel rentals", intent.Unknown, intent.EntityUnknown, chunks, nil)

		Convey("Then the configured terms boost the chunk", func() {
			So(c.Confidence, ShouldAlmostEqual, 1.0/6.0+0.15, epsilon)
		})
	})
}
