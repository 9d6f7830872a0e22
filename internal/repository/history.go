package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"inmobot/internal/model"
)

var (
	// ErrSearchNotFound is returned for unknown search ids, including when a
	// listing points at a search that does not exist
	ErrSearchNotFound = errors.New("search not found")
	// ErrListingNotFound is returned for unknown listing ids
	ErrListingNotFound = errors.New("listing not found")
)

// SearchInput is what callers hand to CreateSearch
type SearchInput struct {
	Prompt   string
	Metadata model.JSONMap
}

// ListingInput is what callers hand to CreateListing
type ListingInput struct {
	SearchID string
	Link     string
	Metadata model.JSONMap
}

// SearchStore records searches and the listings each one produced. Ids are
// UUID strings generated by the store.
type SearchStore interface {
	CreateSearch(ctx context.Context, in SearchInput) (*model.SearchRecord, error)
	GetSearch(ctx context.Context, id string) (*model.SearchRecord, error)
	ListingsForSearch(ctx context.Context, searchID string) ([]model.ListingRecord, error)
	CreateListing(ctx context.Context, in ListingInput) (*model.ListingRecord, error)
	GetListing(ctx context.Context, id string) (*model.ListingRecord, error)
}

// Store is a backend holding both profiles and search history
type Store interface {
	ProfileStore
	SearchStore
}

func newRecordID() string {
	return uuid.NewString()
}

// validRecordID reports whether id looks like a record id. Lookups with
// malformed ids are answered as not found without touching the backend.
func validRecordID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
