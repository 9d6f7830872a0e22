package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inmobot/internal/config"
	"inmobot/internal/model"
	"inmobot/internal/repository"
	"inmobot/internal/search"
)

type failingProvider struct{}

func (failingProvider) Search(context.Context, string) ([]model.Listing, error) {
	return nil, errors.New("quota exceeded")
}

type recordingSearcher struct {
	got     model.Criteria
	outcome search.Outcome
}

func (r *recordingSearcher) Search(_ context.Context, c model.Criteria) search.Outcome {
	r.got = c
	return r.outcome
}

func intPtr(n int) *int { return &n }

func TestRankService_DegradedSearch(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	id, err := store.Put(ctx, repository.ProfileInput{
		UserID:      "u1",
		ProfileText: "busco un apartamento en pocitos 2 dormitorios alquiler 500 mil",
	})
	require.NoError(t, err)
	require.Equal(t, "profile_1", id)

	searcher := search.NewService(failingProvider{}, config.DefaultListingDomains, 0, zap.NewNop())
	svc := NewRankService(store, searcher, nil, zap.NewNop())

	resp, err := svc.Rank(ctx, RankRequest{ProfileID: id, Limit: intPtr(1)})
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Equal(t, "quota exceeded", resp.DegradedReason)
	require.Len(t, resp.Suggestions, 1)
	s := resp.Suggestions[0]
	require.NotNil(t, s.Bedrooms)
	assert.Equal(t, 2, *s.Bedrooms)
	assert.Equal(t, "Pocitos", s.LocationArea)
	assert.Equal(t, "ml", s.Source)
	assert.Equal(t, "Apartamento de 2 dormitorios en Pocitos", s.Title)
}

func TestRankService_StoredFiltersWin(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	id, _ := store.Put(ctx, repository.ProfileInput{
		UserID:      "u1",
		ProfileText: "una casa en carrasco con 3 dormitorios",
		Filtros:     model.JSONMap{"propertyType": "apartment", "zone": "ciudad vieja"},
	})

	rs := &recordingSearcher{outcome: search.Found([]model.Listing{
		{URL: "https://www.veocasas.com/propiedad/1", Title: "A"},
		{URL: "https://www.veocasas.com/propiedad/2", Title: "B"},
	})}
	svc := NewRankService(store, rs, nil, nil)

	resp, err := svc.Rank(ctx, RankRequest{ProfileID: id, CurrentURL: "https://www.infocasas.com.uy/x"})
	require.NoError(t, err)

	assert.Equal(t, model.PropertyApartment, rs.got.PropertyType)
	assert.Equal(t, "Ciudad Vieja", rs.got.Zone)
	assert.Equal(t, intPtr(3), rs.got.Bedrooms)

	assert.False(t, resp.Degraded)
	assert.Empty(t, resp.DegradedReason)
	require.Len(t, resp.Suggestions, DefaultRankLimit)
	assert.Equal(t, "A", resp.Suggestions[0].Title)
	assert.Equal(t, "Ciudad Vieja", resp.Suggestions[0].LocationArea)
}

func TestRankService_RecordsHistory(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	id, _ := store.Put(ctx, repository.ProfileInput{UserID: "u1", ProfileText: "casa en carrasco"})

	rs := &recordingSearcher{outcome: search.Found([]model.Listing{
		{URL: "https://www.veocasas.com/propiedad/1", Title: "A", Content: `{"bedrooms":3}`},
		{URL: "https://www.veocasas.com/propiedad/2", Title: "B"},
	})}
	svc := NewRankService(store, rs, nil, nil).WithHistory(store)

	resp, err := svc.Rank(ctx, RankRequest{ProfileID: id, CurrentURL: "https://x", Limit: intPtr(2)})
	require.NoError(t, err)
	require.NotEmpty(t, resp.SearchID)

	rec, err := store.GetSearch(ctx, resp.SearchID)
	require.NoError(t, err)
	assert.Equal(t, "casa en carrasco", rec.Prompt)
	assert.Equal(t, id, rec.Metadata["profile_id"])
	assert.Equal(t, "https://x", rec.Metadata["current_url"])
	assert.Equal(t, false, rec.Metadata["degraded"])

	listings, err := store.ListingsForSearch(ctx, resp.SearchID)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "https://www.veocasas.com/propiedad/1", listings[0].Link)
	assert.Equal(t, 3, listings[0].Metadata["bedrooms"])
	assert.Equal(t, "B", listings[1].Metadata["title"])
}

type failingHistory struct {
	repository.SearchStore
}

func (failingHistory) CreateSearch(context.Context, repository.SearchInput) (*model.SearchRecord, error) {
	return nil, errors.New("disk full")
}

func TestRankService_HistoryFailureStillServes(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	id, _ := store.Put(ctx, repository.ProfileInput{UserID: "u1", ProfileText: "casa en carrasco"})

	rs := &recordingSearcher{outcome: search.Found([]model.Listing{{URL: "https://www.veocasas.com/propiedad/1"}})}
	svc := NewRankService(store, rs, nil, nil).WithHistory(failingHistory{})

	resp, err := svc.Rank(ctx, RankRequest{ProfileID: id})
	require.NoError(t, err)
	assert.Empty(t, resp.SearchID)
	assert.Len(t, resp.Suggestions, 1)
}

func TestRankService_NotFound(t *testing.T) {
	svc := NewRankService(repository.NewMemoryStore(), &recordingSearcher{}, nil, nil)

	_, err := svc.Rank(context.Background(), RankRequest{ProfileID: "profile_42"})
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, clampLimit(nil))
	assert.Equal(t, 1, clampLimit(intPtr(0)))
	assert.Equal(t, 1, clampLimit(intPtr(-4)))
	assert.Equal(t, 5, clampLimit(intPtr(5)))
	assert.Equal(t, MaxRankLimit, clampLimit(intPtr(500)))
}
