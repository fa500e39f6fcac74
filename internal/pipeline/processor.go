package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"mailmate/internal/enrich"
	"mailmate/internal/logger"
	"mailmate/internal/model"
	"mailmate/internal/repository"
	"mailmate/internal/service"
)

const (
	jobTimeout         = 10 * time.Minute
	defaultConcurrency = 4
)

// Processor is the background enrichment worker: it selects a user's
// unprocessed emails and attaches summary, category, priority score, and
// suggested action to each. One email failing never aborts the others; the
// failed email stays unprocessed and is retried on the next run.
type Processor struct {
	emailRepo   repository.EmailRepository
	summarizer  service.Summarizer
	guard       Guard
	logger      *logger.Logger
	concurrency int
}

func NewProcessor(
	emailRepo repository.EmailRepository,
	summarizer service.Summarizer,
	guard Guard,
	logger *logger.Logger,
	concurrency int,
) *Processor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Processor{
		emailRepo:   emailRepo,
		summarizer:  summarizer,
		guard:       guard,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Start launches the enrichment job for the user and returns immediately.
// At most one job per user runs at a time; a second request while one is in
// flight gets service.ErrProcessingInFlight.
func (p *Processor) Start(userID string) error {
	acquired, err := p.guard.TryAcquire(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("failed to acquire processing slot: %w", err)
	}
	if !acquired {
		return service.ErrProcessingInFlight
	}

	// The job outlives the triggering request, so it runs on its own
	// context rather than the request's.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		defer func() {
			if err := p.guard.Release(context.Background(), userID); err != nil {
				p.logger.Error("Failed to release processing slot for user", userID, ":", err)
			}
		}()

		p.Run(ctx, userID)
	}()

	return nil
}

// Run enriches every unprocessed email for the user. Exported so tests can
// drive the job synchronously.
func (p *Processor) Run(ctx context.Context, userID string) {
	start := time.Now()

	emails, err := p.emailRepo.FindUnprocessed(ctx, userID)
	if err != nil {
		p.logger.Error("Failed to load unprocessed emails for user", userID, ":", err)
		return
	}
	if len(emails) == 0 {
		return
	}

	p.logger.Info("Processing", len(emails), "emails for user", userID)

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(p.concurrency)

	for _, email := range emails {
		email := email
		grp.Go(func() error {
			if err := p.enrichEmail(ctx, email); err != nil {
				// Isolated per email: log, count, leave unprocessed for the
				// next run.
				p.logger.Error("Failed to enrich email", email.ID, ":", err)
				emailsFailedTotal.Inc()
				return nil
			}
			emailsProcessedTotal.Inc()
			return nil
		})
	}
	_ = grp.Wait()

	processingDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("Finished processing for user", userID, "in", time.Since(start).String())
}

func (p *Processor) enrichEmail(ctx context.Context, email *model.Email) error {
	if email.Processed() {
		return nil
	}

	summary, err := p.summarizer.Summarize(ctx, email.Body)
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	category := enrich.Categorize(email.Subject + " " + email.Body)

	senderCount, err := p.emailRepo.CountBySender(ctx, email.UserID, email.Sender)
	if err != nil {
		p.logger.Warn("Sender count lookup failed, scoring without it:", err)
		senderCount = 0
	}

	score := enrich.Score(enrich.SignalInput{
		Subject:     email.Subject,
		Body:        email.Body,
		SenderCount: senderCount,
		ReceivedAt:  email.ReceivedAt,
	}, time.Now())

	enrichment := model.Enrichment{
		Summary:         summary,
		Category:        category,
		PriorityScore:   score,
		SuggestedAction: enrich.SuggestAction(category, score),
	}

	// One statement for all four fields keeps the processed/unprocessed
	// invariant.
	if err := p.emailRepo.UpdateEnrichment(ctx, email.ID, enrichment); err != nil {
		return fmt.Errorf("failed to persist enrichment: %w", err)
	}
	return nil
}
