package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// Email is a single message pulled from Gmail for a user. The four
// enrichment fields (Summary, Category, PriorityScore, SuggestedAction) are
// either all nil (unprocessed) or all set (processed); the pipeline writes
// them in one update so no partial state is ever visible.
type Email struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	MessageID       string    `json:"message_id"`
	Sender          string    `json:"sender"`
	Subject         string    `json:"subject"`
	Body            string    `json:"body"`
	Direction       string    `json:"direction"`
	ReceivedAt      time.Time `json:"received_at"`
	Summary         *string   `json:"summary"`
	Category        *string   `json:"category"`
	PriorityScore   *int      `json:"priority_score"`
	SuggestedAction *string   `json:"suggested_action"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewEmail(userID, messageID, sender, subject, body, direction string, receivedAt time.Time) *Email {
	now := time.Now()
	return &Email{
		ID:         uuid.New().String(),
		UserID:     userID,
		MessageID:  messageID,
		Sender:     sender,
		Subject:    subject,
		Body:       body,
		Direction:  direction,
		ReceivedAt: receivedAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Processed reports whether the email carries a complete enrichment.
func (e *Email) Processed() bool {
	return e.Summary != nil && e.Category != nil && e.PriorityScore != nil && e.SuggestedAction != nil
}

// Enrichment holds the values the pipeline attaches to an email. It is
// persisted as a whole, never field by field.
type Enrichment struct {
	Summary         string
	Category        string
	PriorityScore   int
	SuggestedAction string
}

// Apply sets all four enrichment fields on the email.
func (e *Email) Apply(en Enrichment) {
	e.Summary = &en.Summary
	e.Category = &en.Category
	e.PriorityScore = &en.PriorityScore
	e.SuggestedAction = &en.SuggestedAction
	e.UpdatedAt = time.Now()
}
