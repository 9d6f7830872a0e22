package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"inmobot/internal/model"
)

const (
	DefaultListingTitle = "Propiedad en Uruguay"
	DefaultListingScore = 0.9
	mockListingScore    = 0.95
	mockDefaultBedrooms = 2
	mockDefaultType     = "Propiedad"
	mockDefaultZone     = "Montevideo"
	mockDefaultDeal     = "alquiler"
)

var mockURLs = [3]string{
	"https://www.mercadolibre.com.uy/apartamento-en-venta-de-2-dormitorios-en-pocitos-1060-m2-MLU611639977.htm",
	"https://www.infocasas.com.uy/venta/apartamento/montevideo/pocitos/123456",
	"https://www.veocasas.com/propiedad/apartamento-pocitos-montevideo-789",
}

type mockContent struct {
	Bedrooms  *int `json:"bedrooms"`
	Bathrooms *int `json:"bathrooms"`
}

// MockListings returns the three fixed fallback listings, titled after the
// criteria. Only a missing bedroom count defaults to 2; an explicit 0 is
// kept.
func MockListings(c model.Criteria) []model.Listing {
	kind := mockDefaultType
	if term := c.PropertyType.QueryTerm(); term != "" {
		kind = strings.ToUpper(term[:1]) + term[1:]
	}
	zone := c.Zone
	if zone == "" {
		zone = mockDefaultZone
	}
	deal := c.TransactionType.QueryTerm()
	if deal == "" {
		deal = mockDefaultDeal
	}
	bedrooms := mockDefaultBedrooms
	if c.Bedrooms != nil {
		bedrooms = *c.Bedrooms
	}

	content, _ := json.Marshal(mockContent{Bedrooms: c.Bedrooms, Bathrooms: c.Bathrooms})

	titles := [3]string{
		fmt.Sprintf("%s de %d dormitorios en %s", kind, bedrooms, zone),
		fmt.Sprintf("%s en %s - %s", kind, zone, deal),
		fmt.Sprintf("%s con balcón en %s", kind, zone),
	}

	out := make([]model.Listing, 0, len(mockURLs))
	for i, u := range mockURLs {
		out = append(out, model.Listing{
			URL:     u,
			Title:   titles[i],
			Content: string(content),
			Score:   mockListingScore,
		})
	}
	return out
}
