package model

import "time"

// Dossier is the per-sender analytics view computed on demand from a user's
// processed emails. It is derived data and never persisted.
type Dossier struct {
	TotalEmails          int                 `json:"total_emails"`
	CategoryCounts       map[string]int      `json:"category_counts"`
	AveragePriorityScore float64             `json:"average_priority_score"`
	MostCommonAction     string              `json:"most_common_action"`
	LatestEmailSummary   string              `json:"latest_email_summary"`
	ConversationHistory  []ConversationEntry `json:"conversation_history"`
}

// EmptyDossier is what a search with zero matches returns: all counts zero,
// average zero, no history. Callers get this instead of a not-found error.
func EmptyDossier() *Dossier {
	return &Dossier{CategoryCounts: map[string]int{}, ConversationHistory: []ConversationEntry{}}
}

// ConversationEntry is one email condensed for the dossier history.
type ConversationEntry struct {
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Summary    string    `json:"summary"`
	Direction  string    `json:"direction"`
	ReceivedAt time.Time `json:"received_at"`
}

// ConversationMessage is a raw Gmail thread message returned by the direct
// conversation lookup. It never touches storage.
type ConversationMessage struct {
	MessageID  string    `json:"message_id"`
	Sender     string    `json:"sender"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Snippet    string    `json:"snippet"`
	Body       string    `json:"body"`
	Direction  string    `json:"direction"`
	ReceivedAt time.Time `json:"received_at"`
}
