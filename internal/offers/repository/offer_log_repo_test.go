package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinv/contractor-pm/internal/offers/domain"
)

func setupTestRedis(t *testing.T) (*OfferLogRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewOfferLogRepository(client), mr
}

func TestOfferLogRepository_RecordAndList(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	first := &domain.OfferRecord{ProjectPublicID: "prj-1", UserID: "user-1", To: "a@example.com", Subject: "first"}
	require.NoError(t, repo.Record(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.SentAt.IsZero())

	second := &domain.OfferRecord{ProjectPublicID: "prj-1", UserID: "user-1", To: "b@example.com", Subject: "second", SentAt: time.Now()}
	require.NoError(t, repo.Record(ctx, second))

	items, err := repo.List(ctx, "prj-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Subject)
	assert.Equal(t, "first", items[1].Subject)

	assert.True(t, mr.Exists("offers:project:prj-1"))
	assert.Greater(t, mr.TTL("offers:project:prj-1"), time.Duration(0))
}

func TestOfferLogRepository_Trims(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	for i := 0; i < offerLogMax+5; i++ {
		require.NoError(t, repo.Record(ctx, &domain.OfferRecord{ProjectPublicID: "prj-1", Subject: fmt.Sprintf("s%d", i)}))
	}

	items, err := repo.List(ctx, "prj-1")
	require.NoError(t, err)
	assert.Len(t, items, offerLogMax)
	assert.Equal(t, fmt.Sprintf("s%d", offerLogMax+4), items[0].Subject)
}

func TestOfferLogRepository_EmptyAndForget(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	items, err := repo.List(ctx, "prj-none")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, repo.Record(ctx, &domain.OfferRecord{ProjectPublicID: "prj-2"}))
	require.NoError(t, repo.Forget(ctx, "prj-2"))

	items, err = repo.List(ctx, "prj-2")
	require.NoError(t, err)
	assert.Empty(t, items)
}
