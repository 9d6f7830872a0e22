package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"inmobot/internal/model"
	"inmobot/internal/utils"
)

const (
	SourceInfocasas    = "infocasas"
	SourceMercadoLibre = "ml"
	SourceVeocasas     = "veocasas"

	DefaultSuggestionTitle = "Propiedad Disponible"
	suggestionScore        = 0.95
	suggestionMatchScore   = 95
)

var pricePrinter = message.NewPrinter(language.Spanish)

// listingDetails is what can be recovered from a listing's content
type listingDetails struct {
	Bedrooms  *int
	Bathrooms *int
	PriceUSD  *float64
	Location  string
	CoveredM2 *float64
}

// SourceFor tags a listing URL with the site it came from
func SourceFor(url string) string {
	switch {
	case strings.Contains(url, "infocasas"):
		return SourceInfocasas
	case strings.Contains(url, "mercadolibre"):
		return SourceMercadoLibre
	default:
		return SourceVeocasas
	}
}

// FormatSuggestions maps raw listings into suggestion cards. It considers
// the first limit*3 listings and returns at most limit of them.
func FormatSuggestions(listings []model.Listing, c model.Criteria, limit int) []model.Suggestion {
	if limit < 1 {
		return []model.Suggestion{}
	}
	if limit > len(listings) {
		limit = len(listings)
	}
	if window := limit * 3; len(listings) > window {
		listings = listings[:window]
	}

	out := make([]model.Suggestion, 0, limit)
	for _, l := range listings {
		out = append(out, formatSuggestion(l, c))
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func formatSuggestion(l model.Listing, c model.Criteria) model.Suggestion {
	d := parseDetails(l.Content)

	title := strings.TrimSpace(l.Title)
	if title == "" {
		title = DefaultSuggestionTitle
	}
	location := d.Location
	if location == "" {
		location = c.Zone
	}

	return model.Suggestion{
		Source:       SourceFor(l.URL),
		URL:          l.URL,
		Title:        title,
		PriceUSD:     d.PriceUSD,
		LocationArea: location,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		CoveredM2:    d.CoveredM2,
		Score:        suggestionScore,
		MatchScore:   suggestionMatchScore,
		Reasons:      reasonsFor(d),
		IsValid:      true,
	}
}

// parseDetails reads the structured fields out of listing content. Free
// text yields an empty result.
func parseDetails(content string) listingDetails {
	var d listingDetails
	obj, err := utils.DecodeObject(content)
	if err != nil {
		return d
	}

	if n, ok := utils.AsInt(obj["bedrooms"]); ok && n >= 0 {
		d.Bedrooms = &n
	}
	if n, ok := utils.AsInt(obj["bathrooms"]); ok && n >= 0 {
		d.Bathrooms = &n
	}
	if f, ok := utils.AsFloat(obj["price_usd"]); ok && f > 0 {
		d.PriceUSD = &f
	}
	if f, ok := utils.AsFloat(obj["covered_m2"]); ok && f > 0 {
		d.CoveredM2 = &f
	}
	if s, ok := utils.AsString(obj["location"]); ok {
		d.Location = s
	}
	return d
}

// reasonsFor lists bedrooms, bathrooms, price and location in that order,
// skipping whatever is missing. Zero counts are left out.
func reasonsFor(d listingDetails) []string {
	reasons := make([]string, 0, 4)
	if d.Bedrooms != nil && *d.Bedrooms > 0 {
		reasons = append(reasons, fmt.Sprintf("%d dorm", *d.Bedrooms))
	}
	if d.Bathrooms != nil && *d.Bathrooms > 0 {
		reasons = append(reasons, fmt.Sprintf("%d baños", *d.Bathrooms))
	}
	if d.PriceUSD != nil {
		reasons = append(reasons, "USD "+FormatPrice(*d.PriceUSD))
	}
	if d.Location != "" {
		reasons = append(reasons, d.Location)
	}
	return reasons
}

// FormatPrice renders an amount with Spanish digit grouping
func FormatPrice(amount float64) string {
	if amount == float64(int64(amount)) {
		return pricePrinter.Sprintf("%d", int64(amount))
	}
	return pricePrinter.Sprintf("%.2f", amount)
}
