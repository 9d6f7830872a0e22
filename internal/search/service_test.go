package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inmobot/internal/config"
	"inmobot/internal/model"
)

type fakeProvider struct {
	listings []model.Listing
	err      error
	queries  []string
}

func (f *fakeProvider) Search(_ context.Context, query string) ([]model.Listing, error) {
	f.queries = append(f.queries, query)
	return f.listings, f.err
}

func TestService_Found(t *testing.T) {
	raw := make([]model.Listing, 0, 10)
	for i := 0; i < 10; i++ {
		raw = append(raw, model.Listing{URL: fmt.Sprintf("https://www.veocasas.com/propiedad/%d", i)})
	}
	raw[0].URL = "https://www.veocasas.com/resultados/pocitos"
	fp := &fakeProvider{listings: raw}

	s := NewService(fp, config.DefaultListingDomains, 0, zap.NewNop())
	out := s.Search(context.Background(), model.Criteria{Zone: "Pocitos"})

	assert.False(t, out.Degraded())
	assert.Empty(t, out.Reason)
	require.Len(t, out.Listings, MaxListings)
	assert.Equal(t, "https://www.veocasas.com/propiedad/1", out.Listings[0].URL)
	require.Len(t, fp.queries, 1)
	assert.Contains(t, fp.queries[0], "Pocitos Uruguay")
}

func TestService_EmptyResultsAreNotDegraded(t *testing.T) {
	s := NewService(&fakeProvider{}, config.DefaultListingDomains, 0, nil)
	out := s.Search(context.Background(), model.Criteria{})

	assert.False(t, out.Degraded())
	assert.NotNil(t, out.Listings)
	assert.Empty(t, out.Listings)
}

func TestService_DegradesOnProviderError(t *testing.T) {
	fp := &fakeProvider{err: errors.New("connection refused")}
	s := NewService(fp, config.DefaultListingDomains, time.Minute, zap.NewNop())
	c := model.Criteria{PropertyType: model.PropertyApartment, Zone: "Pocitos", Bedrooms: intPtr(2)}

	out := s.Search(context.Background(), c)

	assert.True(t, out.Degraded())
	assert.Equal(t, "connection refused", out.Reason)
	assert.Equal(t, MockListings(c), out.Listings)

	// degraded outcomes are not cached
	s.Search(context.Background(), c)
	assert.Len(t, fp.queries, 2)
}

func TestService_CachesFoundOutcome(t *testing.T) {
	fp := &fakeProvider{listings: []model.Listing{{URL: "https://www.infocasas.com.uy/venta/1"}}}
	s := NewService(fp, config.DefaultListingDomains, time.Minute, zap.NewNop())
	c := model.Criteria{PropertyType: model.PropertyHouse}

	first := s.Search(context.Background(), c)
	second := s.Search(context.Background(), c)

	assert.Len(t, fp.queries, 1)
	assert.Equal(t, first.Listings, second.Listings)
	assert.False(t, second.Degraded())

	s.Search(context.Background(), model.Criteria{PropertyType: model.PropertyLand})
	assert.Len(t, fp.queries, 2)
}
