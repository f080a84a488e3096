package retrieval

// defaultCategoryBoosts maps web chunk categories to boost terms.
var defaultCategoryBoosts = map[string][]string{
	"lap_swim":        {"lap", "swim", "lane", "adult", "morning", "evening", "hours"},
	"teen_lap_swim":   {"teen", "teenager", "youth", "guardian"},
	"fees":            {"fee", "cost", "price", "pass", "resident", "non-resident", "$", "senior", "day pass"},
	"rules":           {"rule", "allowed", "policy", "required", "circle", "swim test", "lifejacket", "diaper", "floaties"},
	"recreation_swim": {"recreation", "rec", "family", "child", "kid", "spectator", "season"},
}

// CategoryBoosts returns a copy of the boost terms for category.
func CategoryBoosts(category string) []string {
	return append([]string(nil), defaultCategoryBoosts[category]...)
}
