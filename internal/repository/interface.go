package repository

import (
	"context"

	"mailmate/internal/model"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// EmailRepository defines the interface for email data operations
type EmailRepository interface {
	Create(ctx context.Context, email *model.Email) error
	FindByID(ctx context.Context, id string) (*model.Email, error)
	FindByMessageID(ctx context.Context, userID, messageID string) (*model.Email, error)
	// FindUnprocessed returns the user's emails whose enrichment fields are
	// still unset, oldest first.
	FindUnprocessed(ctx context.Context, userID string) ([]*model.Email, error)
	// FindProcessed returns the user's processed emails, highest priority
	// first, then newest first. An empty category means no filter; matching
	// is case-insensitive.
	FindProcessed(ctx context.Context, userID, category string) ([]*model.Email, error)
	// Search returns processed emails whose sender, subject, or body contain
	// the query (case-insensitive), newest first.
	Search(ctx context.Context, userID, query string) ([]*model.Email, error)
	// CountBySender counts stored emails from senders containing the given
	// address fragment.
	CountBySender(ctx context.Context, userID, sender string) (int, error)
	// UpdateEnrichment persists all four enrichment fields in one statement.
	UpdateEnrichment(ctx context.Context, emailID string, enrichment model.Enrichment) error
}
