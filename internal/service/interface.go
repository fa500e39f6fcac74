package service

import (
	"context"
	"time"

	"mailmate/internal/model"
)

type AuthService interface {
	GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry time.Time) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type EmailService interface {
	// FetchEmails pulls messages from Gmail into storage and returns how
	// many new emails were stored.
	FetchEmails(ctx context.Context, userEmail string) (int, error)
	// StartProcessing kicks off the background enrichment job and returns
	// how many emails were queued. The caller gets an acknowledgement, not
	// results.
	StartProcessing(ctx context.Context, userEmail string) (int, error)
	ListEmails(ctx context.Context, userEmail, category string) ([]*model.Email, error)
	ListConversations(ctx context.Context, userEmail, query string, maxResults int64) ([]*model.ConversationMessage, error)
}

type DossierService interface {
	GetDossier(ctx context.Context, userEmail, query string) (*model.Dossier, error)
}

// GmailClient interface for interacting with the Gmail API. The access token
// is passed per call; the client holds no user state.
type GmailClient interface {
	FetchMessages(ctx context.Context, accessToken, userEmail string, maxResults int64) ([]*model.Email, error)
	ListConversations(ctx context.Context, accessToken, userEmail, query string, maxResults int64) ([]*model.ConversationMessage, error)
}

// Summarizer interface for the abstractive summarization model.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Processor runs the enrichment job for a user's unprocessed emails,
// detached from the triggering request.
type Processor interface {
	Start(userID string) error
}
