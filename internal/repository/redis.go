package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"inmobot/internal/model"
)

const (
	redisSeqKey        = "inmobot:profile:seq"
	redisProfilePrefix = "inmobot:profile:"
	redisSearchPrefix  = "inmobot:search:"
	redisListingPrefix = "inmobot:listing:"
)

func redisSearchListingsKey(searchID string) string {
	return redisSearchPrefix + searchID + ":listings"
}

// RedisStore keeps profiles in Redis as JSON values. The id sequence is a
// Redis counter so several API replicas can share one store.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. A zero ttl keeps profiles
// until they are deleted by hand.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Put allocates the next id and writes the profile
func (s *RedisStore) Put(ctx context.Context, in ProfileInput) (string, error) {
	n, err := s.client.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		return "", fmt.Errorf("failed to allocate profile id: %w", err)
	}

	id := formatProfileID(n)
	profile := model.Profile{
		ID:          id,
		UserID:      in.UserID,
		ProfileText: in.ProfileText,
		Filtros:     normalizeJSON(in.Filtros),
		CreatedAt:   time.Now().UTC(),
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := s.client.Set(ctx, redisProfilePrefix+id, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store profile: %w", err)
	}
	return id, nil
}

// Get reads a profile back
func (s *RedisStore) Get(ctx context.Context, id string) (*model.Profile, error) {
	data, err := s.client.Get(ctx, redisProfilePrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var p model.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", id, err)
	}
	return &p, nil
}

// CreateSearch writes a new search record
func (s *RedisStore) CreateSearch(ctx context.Context, in SearchInput) (*model.SearchRecord, error) {
	rec := model.SearchRecord{
		ID:        newRecordID(),
		Prompt:    in.Prompt,
		Metadata:  normalizeJSON(in.Metadata),
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search: %w", err)
	}
	if err := s.client.Set(ctx, redisSearchPrefix+rec.ID, data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store search: %w", err)
	}
	return &rec, nil
}

// GetSearch reads a search record back
func (s *RedisStore) GetSearch(ctx context.Context, id string) (*model.SearchRecord, error) {
	if !validRecordID(id) {
		return nil, ErrSearchNotFound
	}
	var rec model.SearchRecord
	if err := s.getJSON(ctx, redisSearchPrefix+id, &rec); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSearchNotFound
		}
		return nil, fmt.Errorf("failed to load search %s: %w", id, err)
	}
	return &rec, nil
}

// ListingsForSearch reads the listings of a search in insertion order.
// Listings that expired on their own are skipped.
func (s *RedisStore) ListingsForSearch(ctx context.Context, searchID string) ([]model.ListingRecord, error) {
	ids, err := s.client.LRange(ctx, redisSearchListingsKey(searchID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	out := make([]model.ListingRecord, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisListingPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var rec model.ListingRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal listing %s: %w", ids[i], err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// CreateListing writes a listing and appends it to its search
func (s *RedisStore) CreateListing(ctx context.Context, in ListingInput) (*model.ListingRecord, error) {
	if !validRecordID(in.SearchID) {
		return nil, ErrSearchNotFound
	}
	n, err := s.client.Exists(ctx, redisSearchPrefix+in.SearchID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check search: %w", err)
	}
	if n == 0 {
		return nil, ErrSearchNotFound
	}

	rec := model.ListingRecord{
		ID:        newRecordID(),
		SearchID:  in.SearchID,
		Link:      in.Link,
		Metadata:  normalizeJSON(in.Metadata),
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing: %w", err)
	}

	listKey := redisSearchListingsKey(in.SearchID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisListingPrefix+rec.ID, data, s.ttl)
		pipe.RPush(ctx, listKey, rec.ID)
		if s.ttl > 0 {
			pipe.Expire(ctx, listKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store listing: %w", err)
	}
	return &rec, nil
}

// GetListing reads a listing record back
func (s *RedisStore) GetListing(ctx context.Context, id string) (*model.ListingRecord, error) {
	if !validRecordID(id) {
		return nil, ErrListingNotFound
	}
	var rec model.ListingRecord
	if err := s.getJSON(ctx, redisListingPrefix+id, &rec); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}
	return &rec, nil
}

func (s *RedisStore) getJSON(ctx context.Context, key string, out interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// Name implements ProfileStore
func (s *RedisStore) Name() string { return "redis" }

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
