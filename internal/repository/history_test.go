package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobot/internal/model"
)

// exerciseSearchStore runs the behaviour every SearchStore backend shares
func exerciseSearchStore(t *testing.T, s SearchStore) {
	t.Helper()
	ctx := context.Background()

	search, err := s.CreateSearch(ctx, SearchInput{
		Prompt:   "apartamento en pocitos",
		Metadata: model.JSONMap{"zone": "Pocitos"},
	})
	require.NoError(t, err)
	require.True(t, validRecordID(search.ID))
	assert.False(t, search.CreatedAt.IsZero())

	got, err := s.GetSearch(ctx, search.ID)
	require.NoError(t, err)
	assert.Equal(t, "apartamento en pocitos", got.Prompt)
	assert.Equal(t, "Pocitos", got.Metadata["zone"])

	listings, err := s.ListingsForSearch(ctx, search.ID)
	require.NoError(t, err)
	assert.NotNil(t, listings)
	assert.Empty(t, listings)

	first, err := s.CreateListing(ctx, ListingInput{SearchID: search.ID, Link: "https://a"})
	require.NoError(t, err)
	assert.NotNil(t, first.Metadata)
	_, err = s.CreateListing(ctx, ListingInput{SearchID: search.ID, Link: "https://b", Metadata: model.JSONMap{"bedrooms": 2}})
	require.NoError(t, err)

	listings, err = s.ListingsForSearch(ctx, search.ID)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "https://a", listings[0].Link)
	assert.Equal(t, "https://b", listings[1].Link)
	assert.Equal(t, search.ID, listings[1].SearchID)

	one, err := s.GetListing(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://a", one.Link)

	missing := uuid.NewString()
	_, err = s.GetSearch(ctx, missing)
	assert.ErrorIs(t, err, ErrSearchNotFound)
	_, err = s.GetSearch(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrSearchNotFound)
	_, err = s.GetListing(ctx, missing)
	assert.ErrorIs(t, err, ErrListingNotFound)
	_, err = s.CreateListing(ctx, ListingInput{SearchID: missing, Link: "https://c"})
	assert.ErrorIs(t, err, ErrSearchNotFound)

	listings, err = s.ListingsForSearch(ctx, missing)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestMemoryStore_SearchHistory(t *testing.T) {
	exerciseSearchStore(t, NewMemoryStore())
}

func TestRedisStore_SearchHistory(t *testing.T) {
	_, client := setupRedis(t)
	s := NewRedisStore(client, 0)
	defer s.Close()

	exerciseSearchStore(t, s)
}

func TestRedisStore_SearchHistoryTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	s := NewRedisStore(client, time.Hour)
	defer s.Close()

	search, err := s.CreateSearch(ctx, SearchInput{Prompt: "casa"})
	require.NoError(t, err)
	listing, err := s.CreateListing(ctx, ListingInput{SearchID: search.ID, Link: "https://a"})
	require.NoError(t, err)

	assert.Equal(t, time.Hour, mr.TTL(redisSearchPrefix+search.ID))
	assert.Equal(t, time.Hour, mr.TTL(redisListingPrefix+listing.ID))
	assert.Equal(t, time.Hour, mr.TTL(redisSearchListingsKey(search.ID)))
}
