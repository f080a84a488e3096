package intent

// Keyword tables. Row order is part of the contract: intent ties go to the
// earlier row and extracted entities are reported in row order.

type intentRow struct {
	intent   Intent
	keywords []string
}

type entityRow struct {
	entity   Entity
	keywords []string
}

var intentKeywords = []intentRow{
	{ScheduleInquiry, []string{
		"hours", "open", "close", "schedule", "time", "when",
		"morning", "evening", "weekday", "weekend",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	}},
	{PolicyInquiry, []string{
		"rule", "rules", "policy", "allowed", "permitted", "can i", "am i allowed",
		"circle swim", "share", "refund", "cancel", "lifejacket", "glass", "floaties",
	}},
	{EligibilityInquiry, []string{
		"age", "requirement", "how old", "need to be", "eligible", "qualify",
		"swim test", "deep water", "can my",
	}},
	{AmenityInquiry, []string{
		"temperature", "warm", "cold", "heated", "lanes", "how many",
		"features", "slide", "kids", "children", "shallow",
	}},
	{AmenityAvailability, []string{
		"is there", "do you have", "are there", "available",
		"diving board", "locker", "storage",
	}},
	{ContactInquiry, []string{
		"phone", "call", "contact", "reach", "number", "email",
	}},
	{LocationInquiry, []string{
		"address", "location", "where", "directions", "how do i get",
	}},
	{RegistrationInquiry, []string{
		"register", "sign up", "enroll", "lesson", "class", "how do i join",
	}},
}

var entityKeywords = []entityRow{
	{EntityLapSwim, []string{"lap", "lap swim", "adult lap", "lanes", "swim laps", "speed", "slow"}},
	{EntityTeenLapSwim, []string{"teen", "teenager", "13", "14", "15", "16", "17", "youth"}},
	{EntityRecSwim, []string{"recreation", "rec swim", "open swim", "family swim", "families"}},
	{EntityLessons, []string{"lesson", "lessons", "class", "classes", "learn", "swim lessons", "levels", "level"}},
	{EntitySafety, []string{"safety", "lifejacket", "swim test", "deep end", "flotation"}},
	{EntityAmenity, []string{"locker", "diving board", "slide", "features", "beach entry"}},
	{EntityChildren, []string{"kids", "children", "child", "toddler", "shallow"}},
	{EntityFacility, []string{"pool", "facility", "center", "rpac", "aquatics center"}},
	{EntityRefund, []string{"refund", "money back", "cancel", "cancellation"}},
	{EntityDeepWater, []string{"deep", "deep water", "deep end"}},
	{EntityEquipment, []string{"lifejacket", "flotation", "floaties", "vest"}},
	{EntityProhibited, []string{"glass", "bottle", "not allowed", "prohibited", "allowed"}},
	{EntityGuardian, []string{"parent", "guardian", "accompany"}},
	{EntityAge, []string{"age", "old", "years old", "18", "adult"}},
}
