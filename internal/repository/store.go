package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"inmobot/internal/model"
)

// ErrProfileNotFound is returned by Get for unknown profile ids
var ErrProfileNotFound = errors.New("profile not found")

const profileIDPrefix = "profile_"

// ProfileInput is what callers hand to Put; the store assigns the id and
// creation time
type ProfileInput struct {
	UserID      string
	ProfileText string
	Filtros     model.JSONMap
}

// ProfileStore persists search profiles. Ids are opaque strings generated
// by the store and never reused.
type ProfileStore interface {
	Put(ctx context.Context, in ProfileInput) (string, error)
	Get(ctx context.Context, id string) (*model.Profile, error)
	Name() string
	Close() error
}

func formatProfileID(n int64) string {
	return profileIDPrefix + strconv.FormatInt(n, 10)
}

func parseProfileID(id string) (int64, error) {
	raw, ok := strings.CutPrefix(id, profileIDPrefix)
	if !ok {
		return 0, fmt.Errorf("malformed profile id %q", id)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("malformed profile id %q", id)
	}
	return n, nil
}

func normalizeJSON(f model.JSONMap) model.JSONMap {
	if f == nil {
		return model.JSONMap{}
	}
	return f
}
