package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmate/internal/model"
)

func TestEmailRepositoryRejectsDuplicateMessageID(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()

	first := model.NewEmail("user-1", "msg-1", "a@example.com", "Subject", "Body", model.DirectionIncoming, time.Now())
	require.NoError(t, repo.Create(ctx, first))

	dup := model.NewEmail("user-1", "msg-1", "a@example.com", "Subject", "Body", model.DirectionIncoming, time.Now())
	assert.Error(t, repo.Create(ctx, dup))

	// Same message id for another user is fine.
	other := model.NewEmail("user-2", "msg-1", "a@example.com", "Subject", "Body", model.DirectionIncoming, time.Now())
	assert.NoError(t, repo.Create(ctx, other))
}

func TestUpdateEnrichmentSetsAllFourFields(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()

	email := model.NewEmail("user-1", "msg-1", "a@example.com", "Subject", "Body", model.DirectionIncoming, time.Now())
	require.NoError(t, repo.Create(ctx, email))
	assert.False(t, email.Processed())

	err := repo.UpdateEnrichment(ctx, email.ID, model.Enrichment{
		Summary:         "short summary",
		Category:        "Work",
		PriorityScore:   55,
		SuggestedAction: "None",
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, email.ID)
	require.NoError(t, err)
	assert.True(t, stored.Processed())
	assert.Equal(t, "Work", *stored.Category)
	assert.Equal(t, 55, *stored.PriorityScore)
}

func TestSearchReturnsProcessedNewestFirst(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()
	now := time.Now()

	older := model.NewEmail("user-1", "msg-1", "boss@corp.com", "Q1 report", "numbers", model.DirectionIncoming, now.Add(-48*time.Hour))
	newer := model.NewEmail("user-1", "msg-2", "boss@corp.com", "Q2 report", "numbers", model.DirectionIncoming, now.Add(-1*time.Hour))
	unprocessed := model.NewEmail("user-1", "msg-3", "boss@corp.com", "Q3 report", "numbers", model.DirectionIncoming, now)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, unprocessed))

	en := model.Enrichment{Summary: "s", Category: "Work", PriorityScore: 50, SuggestedAction: "None"}
	require.NoError(t, repo.UpdateEnrichment(ctx, older.ID, en))
	require.NoError(t, repo.UpdateEnrichment(ctx, newer.ID, en))

	results, err := repo.Search(ctx, "user-1", "BOSS@corp.com")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "msg-2", results[0].MessageID)
	assert.Equal(t, "msg-1", results[1].MessageID)
}

func TestFindProcessedCategoryFilterIsCaseInsensitive(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()

	email := model.NewEmail("user-1", "msg-1", "a@example.com", "Invoice", "pay up", model.DirectionIncoming, time.Now())
	require.NoError(t, repo.Create(ctx, email))
	require.NoError(t, repo.UpdateEnrichment(ctx, email.ID, model.Enrichment{
		Summary: "s", Category: "Finance", PriorityScore: 30, SuggestedAction: "None",
	}))

	lower, err := repo.FindProcessed(ctx, "user-1", "finance")
	require.NoError(t, err)
	upper, err := repo.FindProcessed(ctx, "user-1", "FINANCE")
	require.NoError(t, err)
	assert.Equal(t, lower, upper)
	assert.Len(t, lower, 1)
}

func TestFindProcessedSortsByPriorityThenRecency(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()
	now := time.Now()

	low := model.NewEmail("user-1", "msg-low", "a@example.com", "a", "b", model.DirectionIncoming, now)
	high := model.NewEmail("user-1", "msg-high", "a@example.com", "a", "b", model.DirectionIncoming, now.Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, low))
	require.NoError(t, repo.Create(ctx, high))

	require.NoError(t, repo.UpdateEnrichment(ctx, low.ID, model.Enrichment{Summary: "s", Category: "Work", PriorityScore: 20, SuggestedAction: "None"}))
	require.NoError(t, repo.UpdateEnrichment(ctx, high.ID, model.Enrichment{Summary: "s", Category: "Work", PriorityScore: 90, SuggestedAction: "Reply"}))

	emails, err := repo.FindProcessed(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "msg-high", emails[0].MessageID)
}
