package search

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"inmobot/internal/metrics"
	"inmobot/internal/model"
)

// MaxListings is how many listings a search hands back at most
const MaxListings = 5

// Searcher finds listings for a set of criteria. It never fails: provider
// errors turn into a degraded Outcome.
type Searcher interface {
	Search(ctx context.Context, c model.Criteria) Outcome
}

// Service is the listing search adapter
type Service struct {
	provider Provider
	domains  []string
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewService creates a new search service. A zero cacheTTL disables caching.
func NewService(provider Provider, domains []string, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		provider: provider,
		domains:  domains,
		logger:   logger,
	}
	if cacheTTL > 0 {
		s.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return s
}

// Search implements Searcher
func (s *Service) Search(ctx context.Context, c model.Criteria) Outcome {
	query := BuildQuery(c, s.domains)
	log := s.logger.With(zap.String("query", query))

	if s.cache != nil {
		if cached, found := s.cache.Get(query); found {
			metrics.SearchCacheHits.Inc()
			metrics.SearchOutcomes.WithLabelValues(metrics.OutcomeFound).Inc()
			log.Debug("search cache hit")
			return Found(append([]model.Listing(nil), cached.([]model.Listing)...))
		}
	}

	start := time.Now()
	raw, err := s.provider.Search(ctx, query)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Warn("search provider failed, falling back to mock listings", zap.Error(err))
		metrics.SearchOutcomes.WithLabelValues(metrics.OutcomeDegraded).Inc()
		return Degrade(MockListings(c), err.Error())
	}

	listings := filterListings(raw, MaxListings)
	log.Info("search completed",
		zap.Int("raw_results", len(raw)),
		zap.Int("listings", len(listings)),
	)

	if s.cache != nil {
		s.cache.SetDefault(query, listings)
	}
	metrics.SearchOutcomes.WithLabelValues(metrics.OutcomeFound).Inc()
	return Found(listings)
}
