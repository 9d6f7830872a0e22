package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Listing is a raw search result for a single property page
type Listing struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Suggestion is one property card shown to the user
type Suggestion struct {
	Source       string   `json:"source"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	PriceUSD     *float64 `json:"price_usd,omitempty"`
	LocationArea string   `json:"location_area,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	CoveredM2    *float64 `json:"covered_m2,omitempty"`
	Score        float64  `json:"score"`
	MatchScore   int      `json:"matchScore"`
	Reasons      []string `json:"reasons"`
	IsValid      bool     `json:"isValid"`
}

// Profile is a stored snapshot of what a user described
type Profile struct {
	ID          string    `json:"profile_id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	ProfileText string    `json:"profile_text" db:"profile_text"`
	Filtros     JSONMap   `json:"filtros" db:"filtros"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// JSONMap represents a JSON object field
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = JSONMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported filtros type %T", value)
	}
}
