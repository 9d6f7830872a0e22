package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobot/internal/model"
)

func suggestions(urls ...string) []model.Suggestion {
	out := make([]model.Suggestion, 0, len(urls))
	for _, u := range urls {
		out = append(out, model.Suggestion{URL: u})
	}
	return out
}

func TestShownSet_Pick(t *testing.T) {
	var s ShownSet
	pool := suggestions("a", "b", "c")

	for _, want := range []string{"a", "b", "c"} {
		got, ok := s.Pick(pool)
		require.True(t, ok)
		assert.Equal(t, want, got.URL)
	}
	assert.Equal(t, []string{"a", "b", "c"}, s.URLs())

	got, ok := s.Pick(pool)
	require.True(t, ok)
	assert.Equal(t, "a", got.URL)
	assert.Equal(t, []string{"a"}, s.URLs())

	got, ok = s.Pick(pool)
	require.True(t, ok)
	assert.Equal(t, "b", got.URL)
}

func TestShownSet_NewCandidatesAfterExhaustion(t *testing.T) {
	var s ShownSet
	s.Pick(suggestions("a"))

	got, ok := s.Pick(suggestions("a", "d"))
	require.True(t, ok)
	assert.Equal(t, "d", got.URL)
}

func TestShownSet_Empty(t *testing.T) {
	var s ShownSet
	_, ok := s.Pick(nil)
	assert.False(t, ok)
	assert.Empty(t, s.URLs())
}
