package model

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is returned by POST /chat
type ChatResponse struct {
	Response string `json:"response"`
}

// ProfileUpsertRequest is the body of POST /profile/upsert
type ProfileUpsertRequest struct {
	UserID      string  `json:"user_id"`
	ProfileText string  `json:"profile_text"`
	Filtros     JSONMap `json:"filtros,omitempty"`
}

// ProfileUpsertResponse is returned by POST /profile/upsert
type ProfileUpsertResponse struct {
	ProfileID string `json:"profile_id"`
}

// RankRequest is the body of POST /rank
type RankRequest struct {
	ProfileID  string `json:"profile_id"`
	CurrentURL string `json:"current_url,omitempty"`
	Limit      *int   `json:"limit,omitempty"`
}

// RankResponse is returned by POST /rank. Degraded is set when the
// suggestions come from the built-in fallback listings. SearchID names the
// recorded search when history is enabled.
type RankResponse struct {
	Suggestions    []Suggestion `json:"suggestions"`
	Degraded       bool         `json:"degraded,omitempty"`
	DegradedReason string       `json:"degraded_reason,omitempty"`
	SearchID       string       `json:"search_id,omitempty"`
}

// WishlistAddRequest is the body of POST /wishlist/add
type WishlistAddRequest struct {
	UserID      string `json:"user_id"`
	PropertyURL string `json:"property_url"`
}

// ErrorResponse is the JSON shape of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}
