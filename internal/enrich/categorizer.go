package enrich

import "strings"

// DefaultCategory is assigned when no keyword matches or the text is empty.
const DefaultCategory = "General"

// categoryRule maps a category label to the keywords that select it.
type categoryRule struct {
	category string
	keywords []string
}

// categoryRules is evaluated in order; the first category with a matching
// keyword wins. Matching is a case-insensitive substring test.
var categoryRules = []categoryRule{
	{"Work", []string{"meeting", "project", "deadline", "standup", "review", "client", "schedule", "agenda"}},
	{"Finance", []string{"invoice", "payment", "receipt", "bank", "statement", "billing", "refund", "transaction"}},
	{"Travel", []string{"flight", "booking", "itinerary", "hotel", "reservation", "boarding", "check-in"}},
	{"Social", []string{"party", "invitation", "birthday", "congratulations", "linkedin", "connect with"}},
	{"Promotions", []string{"sale", "discount", "offer", "deal", "coupon", "unsubscribe", "limited time", "newsletter"}},
}

// Categories lists every label the categorizer can produce, default last.
func Categories() []string {
	out := make([]string, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		out = append(out, rule.category)
	}
	return append(out, DefaultCategory)
}

// Categorize maps email text to exactly one category label. Empty or
// unmatched text yields DefaultCategory.
func Categorize(text string) string {
	if strings.TrimSpace(text) == "" {
		return DefaultCategory
	}

	lowered := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}
