package service

import (
	"context"
	"sort"
	"time"

	"mailmate/internal/logger"
	"mailmate/internal/model"
	"mailmate/internal/repository"
)

const (
	dossierHistoryLimit   = 10
	dossierLookbackMonths = 6
)

type dossierService struct {
	emailRepo repository.EmailRepository
	userRepo  repository.UserRepository
	logger    *logger.Logger
}

func NewDossierService(emailRepo repository.EmailRepository, userRepo repository.UserRepository, logger *logger.Logger) DossierService {
	return &dossierService{
		emailRepo: emailRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// GetDossier aggregates the user's processed emails matching the query.
// Zero matches yield an empty dossier, never an error.
func (s *dossierService) GetDossier(ctx context.Context, userEmail, query string) (*model.Dossier, error) {
	user, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// Newest first.
	emails, err := s.emailRepo.Search(ctx, user.ID, query)
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return model.EmptyDossier(), nil
	}

	dossier := &model.Dossier{
		TotalEmails:    len(emails),
		CategoryCounts: make(map[string]int),
	}

	scoreSum := 0
	actionCounts := make(map[string]int)
	for _, email := range emails {
		dossier.CategoryCounts[*email.Category]++
		scoreSum += *email.PriorityScore
		actionCounts[*email.SuggestedAction]++
	}
	dossier.AveragePriorityScore = float64(scoreSum) / float64(len(emails))
	dossier.MostCommonAction = mostCommonAction(actionCounts)
	dossier.LatestEmailSummary = *emails[0].Summary
	dossier.ConversationHistory = conversationHistory(emails, time.Now())

	return dossier, nil
}

// mostCommonAction picks the action with the highest count, breaking ties by
// lexical order so the result is deterministic.
func mostCommonAction(counts map[string]int) string {
	actions := make([]string, 0, len(counts))
	for action := range counts {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	best := ""
	bestCount := 0
	for _, action := range actions {
		if counts[action] > bestCount {
			best = action
			bestCount = counts[action]
		}
	}
	return best
}

// conversationHistory keeps the most recent entries within the lookback
// window. The input is already ordered newest first.
func conversationHistory(emails []*model.Email, now time.Time) []model.ConversationEntry {
	cutoff := now.AddDate(0, -dossierLookbackMonths, 0)

	history := make([]model.ConversationEntry, 0, dossierHistoryLimit)
	for _, email := range emails {
		if len(history) == dossierHistoryLimit {
			break
		}
		if email.ReceivedAt.Before(cutoff) {
			continue
		}
		history = append(history, model.ConversationEntry{
			Sender:     email.Sender,
			Subject:    email.Subject,
			Summary:    *email.Summary,
			Direction:  email.Direction,
			ReceivedAt: email.ReceivedAt,
		})
	}
	return history
}
