package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobot/internal/model"
)

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Put(ctx, ProfileInput{UserID: "u1", ProfileText: "casa en carrasco"})
	require.NoError(t, err)
	assert.Equal(t, "profile_1", id)

	id2, err := s.Put(ctx, ProfileInput{UserID: "u1", ProfileText: "otra", Filtros: model.JSONMap{"zone": "Centro"}})
	require.NoError(t, err)
	assert.Equal(t, "profile_2", id2)

	p, err := s.Get(ctx, "profile_1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "casa en carrasco", p.ProfileText)
	assert.Equal(t, model.JSONMap{}, p.Filtros)
	assert.False(t, p.CreatedAt.IsZero())

	p, err = s.Get(ctx, "profile_2")
	require.NoError(t, err)
	assert.Equal(t, "Centro", p.Filtros["zone"])
}

func TestMemoryStore_NotFound(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "profile_9")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestMemoryStore_ConcurrentPutsGetUniqueIDs(t *testing.T) {
	s := NewMemoryStore()
	const n = 50

	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Put(context.Background(), ProfileInput{UserID: "u", ProfileText: "t"})
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen["profile_50"])
}

func TestParseProfileID(t *testing.T) {
	n, err := parseProfileID("profile_12")
	require.NoError(t, err)
	assert.EqualValues(t, 12, n)

	for _, bad := range []string{"12", "profile_", "profile_x", "profile_0", "user_1"} {
		_, err := parseProfileID(bad)
		assert.Error(t, err, bad)
	}
}
