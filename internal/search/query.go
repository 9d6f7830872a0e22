package search

import (
	"strconv"
	"strings"

	"inmobot/internal/model"
	"inmobot/internal/utils"
)

// catalogMarkers identify search-result and catalog pages rather than a
// single listing
var catalogMarkers = []string{"/buscar", "/search", "/resultados", "/listado"}

// BuildQuery composes the provider query. Unset criteria are left out
// entirely and the site restriction is appended for every domain.
func BuildQuery(c model.Criteria, domains []string) string {
	parts := []string{
		c.TransactionType.QueryTerm(),
		c.PropertyType.QueryTerm(),
		c.Zone,
		"Uruguay",
	}
	if c.Bedrooms != nil {
		parts = append(parts, strconv.Itoa(*c.Bedrooms)+" dormitorios")
	}
	if c.Bathrooms != nil {
		parts = append(parts, strconv.Itoa(*c.Bathrooms)+" baños")
	}

	sites := make([]string, 0, len(domains))
	for _, d := range domains {
		sites = append(sites, "site:"+d)
	}
	parts = append(parts, strings.Join(sites, " OR "))

	return utils.CollapseSpaces(strings.Join(parts, " "))
}

// IsCatalogPage reports whether url points at a listing index instead of
// a property
func IsCatalogPage(url string) bool {
	lower := strings.ToLower(url)
	for _, marker := range catalogMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// filterListings drops catalog pages, keeps at most max entries and fills
// in the default title and score
func filterListings(raw []model.Listing, max int) []model.Listing {
	out := make([]model.Listing, 0, max)
	for _, l := range raw {
		if len(out) == max {
			break
		}
		if l.URL == "" || IsCatalogPage(l.URL) {
			continue
		}
		if strings.TrimSpace(l.Title) == "" {
			l.Title = DefaultListingTitle
		}
		if l.Score == 0 {
			l.Score = DefaultListingScore
		}
		out = append(out, l)
	}
	return out
}
