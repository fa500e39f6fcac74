package enrich

// Suggested action labels.
const (
	ActionReply   = "Reply"
	ActionArchive = "Archive"
	ActionNone    = "None"
)

// SuggestAction derives a short action label from the category and priority
// score: high-priority emails deserve a reply, low-priority promotional and
// social mail can be archived, everything else needs nothing.
func SuggestAction(category string, score int) string {
	if score >= HighPriorityThreshold {
		return ActionReply
	}
	if (category == "Promotions" || category == "Social") && score < MediumPriorityThreshold {
		return ActionArchive
	}
	return ActionNone
}
