package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobot/internal/model"
)

func TestClient_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "hola", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"response":"¿Qué buscás?"}`))
	}))
	defer srv.Close()

	reply, err := New(srv.URL+"/", time.Second).Chat(context.Background(), []model.ChatMessage{
		{Role: model.RoleUser, Content: "hola"},
	})
	require.NoError(t, err)
	assert.Equal(t, "¿Qué buscás?", reply)
}

func TestClient_ProfileAndRank(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/profile/upsert", func(w http.ResponseWriter, r *http.Request) {
		var req model.ProfileUpsertRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user_1", req.UserID)
		assert.Equal(t, "casa", req.Filtros["propertyType"])
		_, _ = w.Write([]byte(`{"profile_id":"profile_7"}`))
	})
	mux.HandleFunc("/rank", func(w http.ResponseWriter, r *http.Request) {
		var req model.RankRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "profile_7", req.ProfileID)
		require.NotNil(t, req.Limit)
		assert.Equal(t, 5, *req.Limit)
		_, _ = w.Write([]byte(`{"suggestions":[{"url":"https://a","title":"A","score":0.9}],"degraded":true,"degraded_reason":"x"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, time.Second)
	ctx := context.Background()

	id, err := c.UpsertProfile(ctx, model.ProfileUpsertRequest{
		UserID:      "user_1",
		ProfileText: "busco casa",
		Filtros:     model.JSONMap{"propertyType": "casa"},
	})
	require.NoError(t, err)
	assert.Equal(t, "profile_7", id)

	limit := 5
	resp, err := c.Rank(ctx, model.RankRequest{ProfileID: id, Limit: &limit})
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "https://a", resp.Suggestions[0].URL)
	assert.True(t, resp.Degraded)
}

func TestClient_Wishlist(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wishlist/add", func(w http.ResponseWriter, r *http.Request) {
		var body model.WishlistAddRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user_1", body.UserID)
		assert.Equal(t, "https://a", body.PropertyURL)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("/wishlist/user_1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"wishlist":[]}`))
	})
	mux.HandleFunc("/wishlist/user_2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"wishlist":[{"title":"Casa en Pocitos","url":"https://a","score":0.8}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, time.Second)
	require.NoError(t, c.AddToWishlist(context.Background(), "user_1", "https://a"))

	list, err := c.Wishlist(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = c.Wishlist(context.Background(), "user_2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Casa en Pocitos", list[0].Title)
	assert.Equal(t, "https://a", list[0].URL)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Perfil no encontrado"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Rank(context.Background(), model.RankRequest{ProfileID: "profile_9"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Perfil no encontrado", apiErr.Message)
	assert.Equal(t, "HTTP 404: Perfil no encontrado", err.Error())
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","chat":"ChatGPT (gpt-4o-mini)"}`))
	}))
	defer srv.Close()

	h, err := New(srv.URL, time.Second).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h["status"])
}

func TestClient_Unreachable(t *testing.T) {
	_, err := New("http://127.0.0.1:1", time.Second).Chat(context.Background(), nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
