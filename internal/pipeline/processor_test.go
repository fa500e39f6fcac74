package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmate/internal/ai"
	"mailmate/internal/logger"
	"mailmate/internal/model"
	"mailmate/internal/pipeline"
	"mailmate/internal/repository/memory"
	"mailmate/internal/service"
)

func TestRunEnrichesAllUnprocessedEmails(t *testing.T) {
	emailRepo := memory.NewInMemoryEmailRepository()
	summarizer := ai.NewMockSummarizer()
	summarizer.SummarizeFunc = func(ctx context.Context, text string) (string, error) {
		return "a summary", nil
	}
	processor := pipeline.NewProcessor(emailRepo, summarizer, pipeline.NewInMemoryGuard(), logger.New(), 4)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		email := model.NewEmail("user-1", "msg-"+string(rune('a'+i)), "sender@example.com", "meeting notes", "body text", model.DirectionIncoming, time.Now())
		require.NoError(t, emailRepo.Create(ctx, email))
	}

	processor.Run(ctx, "user-1")

	unprocessed, err := emailRepo.FindUnprocessed(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, unprocessed)

	processed, err := emailRepo.FindProcessed(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, processed, 5)
	for _, email := range processed {
		assert.NotNil(t, email.Summary)
		assert.NotNil(t, email.Category)
		assert.NotNil(t, email.PriorityScore)
		assert.NotNil(t, email.SuggestedAction)
		assert.Equal(t, "Work", *email.Category)
	}
}

func TestRunLeavesProcessedEmailsUnchanged(t *testing.T) {
	emailRepo := memory.NewInMemoryEmailRepository()
	summarizer := ai.NewMockSummarizer()
	summarizer.SummarizeFunc = func(ctx context.Context, text string) (string, error) {
		return "fresh summary", nil
	}
	processor := pipeline.NewProcessor(emailRepo, summarizer, pipeline.NewInMemoryGuard(), logger.New(), 4)
	ctx := context.Background()

	email := model.NewEmail("user-1", "msg-1", "sender@example.com", "subject", "body", model.DirectionIncoming, time.Now())
	require.NoError(t, emailRepo.Create(ctx, email))
	require.NoError(t, emailRepo.UpdateEnrichment(ctx, email.ID, model.Enrichment{
		Summary: "original summary", Category: "Finance", PriorityScore: 42, SuggestedAction: "None",
	}))

	processor.Run(ctx, "user-1")

	stored, err := emailRepo.FindByID(ctx, email.ID)
	require.NoError(t, err)
	assert.Equal(t, "original summary", *stored.Summary)
	assert.Equal(t, "Finance", *stored.Category)
	assert.Equal(t, 42, *stored.PriorityScore)
}

func TestRunIsolatesPerEmailFailures(t *testing.T) {
	emailRepo := memory.NewInMemoryEmailRepository()
	summarizer := ai.NewMockSummarizer()
	summarizer.SummarizeFunc = func(ctx context.Context, text string) (string, error) {
		if text == "poison" {
			return "", errors.New("model unavailable")
		}
		return "a summary", nil
	}
	processor := pipeline.NewProcessor(emailRepo, summarizer, pipeline.NewInMemoryGuard(), logger.New(), 4)
	ctx := context.Background()

	good := model.NewEmail("user-1", "msg-good", "a@example.com", "subject", "regular body", model.DirectionIncoming, time.Now())
	bad := model.NewEmail("user-1", "msg-bad", "a@example.com", "subject", "poison", model.DirectionIncoming, time.Now())
	require.NoError(t, emailRepo.Create(ctx, good))
	require.NoError(t, emailRepo.Create(ctx, bad))

	processor.Run(ctx, "user-1")

	processed, err := emailRepo.FindProcessed(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, processed, 1)
	assert.Equal(t, "msg-good", processed[0].MessageID)

	// The failed email stays unprocessed and is retried next run.
	unprocessed, err := emailRepo.FindUnprocessed(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, unprocessed, 1)
	assert.Equal(t, "msg-bad", unprocessed[0].MessageID)

	summarizer.SummarizeFunc = func(ctx context.Context, text string) (string, error) {
		return "recovered summary", nil
	}
	processor.Run(ctx, "user-1")

	unprocessed, err = emailRepo.FindUnprocessed(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, unprocessed)
}

func TestStartRefusesSecondJobForSameUser(t *testing.T) {
	emailRepo := memory.NewInMemoryEmailRepository()
	guard := pipeline.NewInMemoryGuard()
	processor := pipeline.NewProcessor(emailRepo, ai.NewMockSummarizer(), guard, logger.New(), 4)

	acquired, err := guard.TryAcquire(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, acquired)

	err = processor.Start("user-1")
	assert.ErrorIs(t, err, service.ErrProcessingInFlight)

	// Another user is unaffected.
	assert.NoError(t, processor.Start("user-2"))
}

func TestInMemoryGuardAcquireRelease(t *testing.T) {
	guard := pipeline.NewInMemoryGuard()
	ctx := context.Background()

	acquired, err := guard.TryAcquire(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = guard.TryAcquire(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, acquired)

	require.NoError(t, guard.Release(ctx, "user-1"))

	acquired, err = guard.TryAcquire(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, acquired)
}
