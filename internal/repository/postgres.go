package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inmobot/internal/model"
)

const profilesSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id           BIGSERIAL PRIMARY KEY,
	user_id      TEXT NOT NULL,
	profile_text TEXT NOT NULL,
	filtros      JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const searchesSchema = `
CREATE TABLE IF NOT EXISTS searches (
	id         UUID PRIMARY KEY,
	prompt     TEXT NOT NULL,
	metadata   JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const searchListingsSchema = `
CREATE TABLE IF NOT EXISTS search_listings (
	id         UUID PRIMARY KEY,
	search_id  UUID NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
	link       TEXT NOT NULL,
	metadata   JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const searchListingsIndex = `CREATE INDEX IF NOT EXISTS idx_search_listings_search_id ON search_listings (search_id)`

// pgForeignKeyViolation is the SQLSTATE for a dangling foreign key
const pgForeignKeyViolation = "23503"

// PostgresStore keeps profiles in a PostgreSQL table
type PostgresStore struct {
	db *sqlx.DB
}

type profileRow struct {
	ID          int64         `db:"id"`
	UserID      string        `db:"user_id"`
	ProfileText string        `db:"profile_text"`
	Filtros     model.JSONMap `db:"filtros"`
	CreatedAt   time.Time     `db:"created_at"`
}

// NewPostgresStore connects to PostgreSQL and makes sure the profiles
// table exists
func NewPostgresStore(ctx context.Context, dsn string, maxConn, maxIdleConn int) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	store := NewPostgresStoreFromDB(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStoreFromDB wraps an existing connection pool
func NewPostgresStoreFromDB(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the profile and search history tables if needed
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{profilesSchema, searchesSchema, searchListingsSchema, searchListingsIndex} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Put inserts a new profile row
func (s *PostgresStore) Put(ctx context.Context, in ProfileInput) (string, error) {
	query := `INSERT INTO profiles (user_id, profile_text, filtros) VALUES ($1, $2, $3) RETURNING id`

	var n int64
	err := s.db.QueryRowxContext(ctx, query, in.UserID, in.ProfileText, normalizeJSON(in.Filtros)).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("failed to insert profile: %w", err)
	}
	return formatProfileID(n), nil
}

// Get loads a profile by id
func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Profile, error) {
	n, err := parseProfileID(id)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	query := `SELECT id, user_id, profile_text, filtros, created_at FROM profiles WHERE id = $1`

	var row profileRow
	if err := s.db.GetContext(ctx, &row, query, n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &model.Profile{
		ID:          formatProfileID(row.ID),
		UserID:      row.UserID,
		ProfileText: row.ProfileText,
		Filtros:     normalizeJSON(row.Filtros),
		CreatedAt:   row.CreatedAt,
	}, nil
}

// CreateSearch inserts a search row
func (s *PostgresStore) CreateSearch(ctx context.Context, in SearchInput) (*model.SearchRecord, error) {
	rec := model.SearchRecord{
		ID:       newRecordID(),
		Prompt:   in.Prompt,
		Metadata: normalizeJSON(in.Metadata),
	}

	query := `INSERT INTO searches (id, prompt, metadata) VALUES ($1, $2, $3) RETURNING created_at`
	if err := s.db.QueryRowxContext(ctx, query, rec.ID, rec.Prompt, rec.Metadata).Scan(&rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert search: %w", err)
	}
	return &rec, nil
}

// GetSearch loads a search by id
func (s *PostgresStore) GetSearch(ctx context.Context, id string) (*model.SearchRecord, error) {
	if !validRecordID(id) {
		return nil, ErrSearchNotFound
	}

	query := `SELECT id, prompt, metadata, created_at FROM searches WHERE id = $1`

	var rec model.SearchRecord
	if err := s.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSearchNotFound
		}
		return nil, fmt.Errorf("failed to get search: %w", err)
	}
	rec.Metadata = normalizeJSON(rec.Metadata)
	return &rec, nil
}

// ListingsForSearch loads the listings of a search, oldest first
func (s *PostgresStore) ListingsForSearch(ctx context.Context, searchID string) ([]model.ListingRecord, error) {
	out := []model.ListingRecord{}
	if !validRecordID(searchID) {
		return out, nil
	}

	query := `
		SELECT id, search_id, link, metadata, created_at
		FROM search_listings
		WHERE search_id = $1
		ORDER BY created_at, id
	`
	if err := s.db.SelectContext(ctx, &out, query, searchID); err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	for i := range out {
		out[i].Metadata = normalizeJSON(out[i].Metadata)
	}
	return out, nil
}

// CreateListing inserts a listing row. A missing parent search is reported
// as ErrSearchNotFound.
func (s *PostgresStore) CreateListing(ctx context.Context, in ListingInput) (*model.ListingRecord, error) {
	if !validRecordID(in.SearchID) {
		return nil, ErrSearchNotFound
	}

	rec := model.ListingRecord{
		ID:       newRecordID(),
		SearchID: in.SearchID,
		Link:     in.Link,
		Metadata: normalizeJSON(in.Metadata),
	}

	query := `INSERT INTO search_listings (id, search_id, link, metadata) VALUES ($1, $2, $3, $4) RETURNING created_at`
	err := s.db.QueryRowxContext(ctx, query, rec.ID, rec.SearchID, rec.Link, rec.Metadata).Scan(&rec.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return nil, ErrSearchNotFound
		}
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}
	return &rec, nil
}

// GetListing loads a listing by id
func (s *PostgresStore) GetListing(ctx context.Context, id string) (*model.ListingRecord, error) {
	if !validRecordID(id) {
		return nil, ErrListingNotFound
	}

	query := `SELECT id, search_id, link, metadata, created_at FROM search_listings WHERE id = $1`

	var rec model.ListingRecord
	if err := s.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	rec.Metadata = normalizeJSON(rec.Metadata)
	return &rec, nil
}

// Name implements ProfileStore
func (s *PostgresStore) Name() string { return "postgres" }

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
