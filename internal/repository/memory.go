package repository

import (
	"context"
	"sync"
	"time"

	"inmobot/internal/model"
)

// MemoryStore keeps profiles and search history for the lifetime of the
// process
type MemoryStore struct {
	mu       sync.RWMutex
	next     int64
	profiles map[string]model.Profile
	searches map[string]model.SearchRecord
	listings map[string]model.ListingRecord
	// listing ids per search, in insertion order
	bySearch map[string][]string
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		next:     1,
		profiles: make(map[string]model.Profile),
		searches: make(map[string]model.SearchRecord),
		listings: make(map[string]model.ListingRecord),
		bySearch: make(map[string][]string),
		now:      time.Now,
	}
}

// Put stores a new profile under the next sequential id
func (s *MemoryStore) Put(_ context.Context, in ProfileInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := formatProfileID(s.next)
	s.next++
	s.profiles[id] = model.Profile{
		ID:          id,
		UserID:      in.UserID,
		ProfileText: in.ProfileText,
		Filtros:     normalizeJSON(in.Filtros),
		CreatedAt:   s.now(),
	}
	return id, nil
}

// Get returns the profile stored under id
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

// CreateSearch records a new search
func (s *MemoryStore) CreateSearch(_ context.Context, in SearchInput) (*model.SearchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := model.SearchRecord{
		ID:        newRecordID(),
		Prompt:    in.Prompt,
		Metadata:  normalizeJSON(in.Metadata),
		CreatedAt: s.now(),
	}
	s.searches[rec.ID] = rec
	return &rec, nil
}

// GetSearch returns the search stored under id
func (s *MemoryStore) GetSearch(_ context.Context, id string) (*model.SearchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.searches[id]
	if !ok {
		return nil, ErrSearchNotFound
	}
	return &rec, nil
}

// ListingsForSearch returns the listings of a search, oldest first. An
// unknown search has no listings.
func (s *MemoryStore) ListingsForSearch(_ context.Context, searchID string) ([]model.ListingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.bySearch[searchID]
	out := make([]model.ListingRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listings[id])
	}
	return out, nil
}

// CreateListing records a listing under an existing search
func (s *MemoryStore) CreateListing(_ context.Context, in ListingInput) (*model.ListingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.searches[in.SearchID]; !ok {
		return nil, ErrSearchNotFound
	}

	rec := model.ListingRecord{
		ID:        newRecordID(),
		SearchID:  in.SearchID,
		Link:      in.Link,
		Metadata:  normalizeJSON(in.Metadata),
		CreatedAt: s.now(),
	}
	s.listings[rec.ID] = rec
	s.bySearch[in.SearchID] = append(s.bySearch[in.SearchID], rec.ID)
	return &rec, nil
}

// GetListing returns the listing stored under id
func (s *MemoryStore) GetListing(_ context.Context, id string) (*model.ListingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.listings[id]
	if !ok {
		return nil, ErrListingNotFound
	}
	return &rec, nil
}

// Name implements ProfileStore
func (s *MemoryStore) Name() string { return "memory" }

// Close implements ProfileStore
func (s *MemoryStore) Close() error { return nil }
