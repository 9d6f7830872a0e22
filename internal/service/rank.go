package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inmobot/internal/extractor"
	"inmobot/internal/metrics"
	"inmobot/internal/model"
	"inmobot/internal/repository"
	"inmobot/internal/search"
)

const (
	DefaultRankLimit = 1
	MaxRankLimit     = 20
)

// RankService turns a stored profile into property suggestions
type RankService struct {
	store     repository.ProfileStore
	searcher  search.Searcher
	extractor extractor.Extractor
	history   repository.SearchStore
	logger    *zap.Logger
}

// NewRankService creates a new rank service
func NewRankService(store repository.ProfileStore, searcher search.Searcher, ex extractor.Extractor, logger *zap.Logger) *RankService {
	if ex == nil {
		ex = extractor.NewRuleExtractor()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RankService{
		store:     store,
		searcher:  searcher,
		extractor: ex,
		logger:    logger,
	}
}

// WithHistory makes Rank record every search and the suggestions it served
func (s *RankService) WithHistory(history repository.SearchStore) *RankService {
	s.history = history
	return s
}

// RankRequest carries the inputs of one ranking call
type RankRequest struct {
	ProfileID  string
	CurrentURL string
	Limit      *int
}

// Rank loads the profile, searches for listings and formats them. Unknown
// ids yield an error matching repository.ErrProfileNotFound.
func (s *RankService) Rank(ctx context.Context, req RankRequest) (*model.RankResponse, error) {
	profile, err := s.store.Get(ctx, req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", req.ProfileID, err)
	}

	criteria := s.CriteriaFor(ctx, profile)
	limit := clampLimit(req.Limit)

	s.logger.Info("rank request",
		zap.String("profile_id", profile.ID),
		zap.String("current_url", req.CurrentURL),
		zap.Int("limit", limit),
		zap.Any("criteria", criteria),
	)

	outcome := s.searcher.Search(ctx, criteria)
	suggestions := FormatSuggestions(outcome.Listings, criteria, limit)
	metrics.SuggestionsServed.Add(float64(len(suggestions)))

	return &model.RankResponse{
		Suggestions:    suggestions,
		Degraded:       outcome.Degraded(),
		DegradedReason: outcome.Reason,
		SearchID:       s.record(ctx, profile, req, criteria, outcome, suggestions),
	}, nil
}

// record stores the search and its suggestions. History is best effort: a
// failed write is logged and the suggestions are still served.
func (s *RankService) record(ctx context.Context, p *model.Profile, req RankRequest, c model.Criteria, outcome search.Outcome, suggestions []model.Suggestion) string {
	if s.history == nil {
		return ""
	}

	meta := model.JSONMap{
		"profile_id": p.ID,
		"user_id":    p.UserID,
		"criteria":   c.AsMap(),
		"degraded":   outcome.Degraded(),
	}
	if req.CurrentURL != "" {
		meta["current_url"] = req.CurrentURL
	}

	rec, err := s.history.CreateSearch(ctx, repository.SearchInput{Prompt: p.ProfileText, Metadata: meta})
	if err != nil {
		metrics.HistoryWrites.WithLabelValues(metrics.ResultError).Inc()
		s.logger.Warn("failed to record search", zap.String("profile_id", p.ID), zap.Error(err))
		return ""
	}

	for _, sg := range suggestions {
		_, err := s.history.CreateListing(ctx, repository.ListingInput{
			SearchID: rec.ID,
			Link:     sg.URL,
			Metadata: suggestionMetadata(sg),
		})
		if err != nil {
			metrics.HistoryWrites.WithLabelValues(metrics.ResultError).Inc()
			s.logger.Warn("failed to record listing", zap.String("search_id", rec.ID), zap.Error(err))
			return rec.ID
		}
	}

	metrics.HistoryWrites.WithLabelValues(metrics.ResultOK).Inc()
	return rec.ID
}

func suggestionMetadata(sg model.Suggestion) model.JSONMap {
	m := model.JSONMap{
		"title":  sg.Title,
		"source": sg.Source,
		"score":  sg.Score,
	}
	if sg.LocationArea != "" {
		m["location_area"] = sg.LocationArea
	}
	if sg.PriceUSD != nil {
		m["price_usd"] = *sg.PriceUSD
	}
	if sg.Bedrooms != nil {
		m["bedrooms"] = *sg.Bedrooms
	}
	if sg.Bathrooms != nil {
		m["bathrooms"] = *sg.Bathrooms
	}
	return m
}

// CriteriaFor derives search criteria from a profile: stored filters win,
// anything they leave out is read from the profile text.
func (s *RankService) CriteriaFor(ctx context.Context, p *model.Profile) model.Criteria {
	fromText := s.extractor.Extract(ctx, p.ProfileText)
	stored := model.CriteriaFromMap(p.Filtros)
	if stored.Zone != "" {
		stored.Zone = extractor.CanonicalZone(stored.Zone)
	}
	return stored.FillFrom(fromText)
}

func clampLimit(limit *int) int {
	if limit == nil {
		return DefaultRankLimit
	}
	switch n := *limit; {
	case n < 1:
		return DefaultRankLimit
	case n > MaxRankLimit:
		return MaxRankLimit
	default:
		return n
	}
}
