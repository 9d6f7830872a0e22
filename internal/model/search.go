package model

import "time"

// SearchRecord is one search run for a user, with the prompt that drove it
type SearchRecord struct {
	ID        string    `json:"id" db:"id"`
	Prompt    string    `json:"prompt" db:"prompt"`
	Metadata  JSONMap   `json:"metadata" db:"metadata"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ListingRecord is a property link produced by a recorded search
type ListingRecord struct {
	ID        string    `json:"id" db:"id"`
	SearchID  string    `json:"id_busquedas" db:"search_id"`
	Link      string    `json:"link" db:"link"`
	Metadata  JSONMap   `json:"metadata" db:"metadata"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SearchWithListings is returned by GET /searches/:id/full
type SearchWithListings struct {
	Search   SearchRecord    `json:"search"`
	Listings []ListingRecord `json:"listings"`
}

// SearchCreateRequest is the body of POST /searches
type SearchCreateRequest struct {
	Prompt   string  `json:"prompt"`
	Metadata JSONMap `json:"metadata,omitempty"`
}

// ListingCreateRequest is the body of POST /listings
type ListingCreateRequest struct {
	SearchID string  `json:"id_busquedas"`
	Link     string  `json:"link"`
	Metadata JSONMap `json:"metadata,omitempty"`
}
