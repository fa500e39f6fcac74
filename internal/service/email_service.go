package service

import (
	"context"
	"fmt"

	"mailmate/internal/config"
	"mailmate/internal/logger"
	"mailmate/internal/model"
	"mailmate/internal/repository"
)

const (
	defaultConversationResults = 10
	maxConversationResults     = 50
)

type emailService struct {
	emailRepo   repository.EmailRepository
	userRepo    repository.UserRepository
	gmailClient GmailClient
	processor   Processor
	logger      *logger.Logger
}

func NewEmailService(
	emailRepo repository.EmailRepository,
	userRepo repository.UserRepository,
	gmailClient GmailClient,
	processor Processor,
	logger *logger.Logger,
) EmailService {
	return &emailService{
		emailRepo:   emailRepo,
		userRepo:    userRepo,
		gmailClient: gmailClient,
		processor:   processor,
		logger:      logger,
	}
}

// requireUser resolves the address to a user holding a usable access token.
func (s *emailService) requireUser(ctx context.Context, userEmail string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.AccessToken == "" {
		return nil, ErrAuthenticationRequired
	}
	return user, nil
}

func (s *emailService) FetchEmails(ctx context.Context, userEmail string) (int, error) {
	user, err := s.requireUser(ctx, userEmail)
	if err != nil {
		return 0, err
	}

	maxFetch := int64(config.GetEnvInt("MAX_FETCH_EMAILS", 20))

	messages, err := s.gmailClient.FetchMessages(ctx, user.AccessToken, user.Email, maxFetch)
	if err != nil {
		s.logger.Error("Gmail fetch failed for", user.Email, ":", err)
		return 0, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	stored := 0
	for _, email := range messages {
		// Skip messages we already have; enrichment state is preserved.
		if existing, err := s.emailRepo.FindByMessageID(ctx, user.ID, email.MessageID); err == nil && existing != nil {
			continue
		}

		email.UserID = user.ID
		if err := s.emailRepo.Create(ctx, email); err != nil {
			s.logger.Error("Failed to store email", email.MessageID, ":", err)
			continue
		}
		stored++
	}

	s.logger.Info("Stored", stored, "new emails for", user.Email)
	return stored, nil
}

func (s *emailService) StartProcessing(ctx context.Context, userEmail string) (int, error) {
	user, err := s.requireUser(ctx, userEmail)
	if err != nil {
		return 0, err
	}

	unprocessed, err := s.emailRepo.FindUnprocessed(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up unprocessed emails: %w", err)
	}
	if len(unprocessed) == 0 {
		processed, err := s.emailRepo.FindProcessed(ctx, user.ID, "")
		if err != nil {
			return 0, fmt.Errorf("failed to look up emails: %w", err)
		}
		if len(processed) == 0 {
			return 0, ErrProcessingNotStarted
		}
		// Everything already enriched; the job would be a no-op.
		return 0, nil
	}

	if err := s.processor.Start(user.ID); err != nil {
		return 0, err
	}

	s.logger.Info("Queued", len(unprocessed), "emails for processing, user:", user.Email)
	return len(unprocessed), nil
}

func (s *emailService) ListEmails(ctx context.Context, userEmail, category string) ([]*model.Email, error) {
	user, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, ErrUserNotFound
	}

	emails, err := s.emailRepo.FindProcessed(ctx, user.ID, category)
	if err != nil {
		return nil, err
	}
	if emails == nil {
		emails = []*model.Email{}
	}
	return emails, nil
}

func (s *emailService) ListConversations(ctx context.Context, userEmail, query string, maxResults int64) ([]*model.ConversationMessage, error) {
	user, err := s.requireUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = defaultConversationResults
	}
	if maxResults > maxConversationResults {
		maxResults = maxConversationResults
	}

	messages, err := s.gmailClient.ListConversations(ctx, user.AccessToken, user.Email, query, maxResults)
	if err != nil {
		s.logger.Error("Gmail conversation search failed for", user.Email, ":", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	if messages == nil {
		messages = []*model.ConversationMessage{}
	}
	return messages, nil
}
