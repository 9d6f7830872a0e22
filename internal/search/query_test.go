package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobot/internal/config"
	"inmobot/internal/model"
)

func intPtr(n int) *int { return &n }

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		criteria model.Criteria
		want     string
	}{
		{
			name: "all fields",
			criteria: model.Criteria{
				PropertyType:    model.PropertyApartment,
				TransactionType: model.TransactionRent,
				Zone:            "Pocitos",
				Bedrooms:        intPtr(2),
				Bathrooms:       intPtr(1),
			},
			want: "alquiler apartamento Pocitos Uruguay 2 dormitorios 1 baños " +
				"site:mercadolibre.com.uy OR site:infocasas.com.uy OR site:veocasas.com",
		},
		{
			name:     "unset fields are omitted",
			criteria: model.Criteria{PropertyType: model.PropertyHouse},
			want:     "casa Uruguay site:mercadolibre.com.uy OR site:infocasas.com.uy OR site:veocasas.com",
		},
		{
			name:     "zero bedrooms is still a value",
			criteria: model.Criteria{TransactionType: model.TransactionSale, Bedrooms: intPtr(0)},
			want:     "venta Uruguay 0 dormitorios site:mercadolibre.com.uy OR site:infocasas.com.uy OR site:veocasas.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.criteria, config.DefaultListingDomains))
		})
	}
}

func TestIsCatalogPage(t *testing.T) {
	assert.True(t, IsCatalogPage("https://www.infocasas.com.uy/buscar/apartamentos"))
	assert.True(t, IsCatalogPage("https://listado.mercadolibre.com.uy/inmuebles/Listado/pocitos"))
	assert.True(t, IsCatalogPage("https://www.veocasas.com/Resultados?zona=centro"))
	assert.True(t, IsCatalogPage("https://www.veocasas.com/search?q=casa"))
	assert.False(t, IsCatalogPage("https://www.infocasas.com.uy/venta/apartamento/montevideo/pocitos/123456"))
}

func TestFilterListings(t *testing.T) {
	raw := []model.Listing{
		{URL: "https://www.infocasas.com.uy/buscar/x"},
		{URL: "https://a.example/1", Title: "Uno", Score: 0.5},
		{URL: "https://a.example/2"},
		{URL: ""},
		{URL: "https://a.example/3"},
		{URL: "https://a.example/listado/4"},
		{URL: "https://a.example/5"},
		{URL: "https://a.example/6"},
		{URL: "https://a.example/7"},
	}

	got := filterListings(raw, MaxListings)

	require.Len(t, got, MaxListings)
	assert.Equal(t, "https://a.example/1", got[0].URL)
	assert.Equal(t, "Uno", got[0].Title)
	assert.Equal(t, 0.5, got[0].Score)
	assert.Equal(t, DefaultListingTitle, got[1].Title)
	assert.Equal(t, DefaultListingScore, got[1].Score)
	assert.Equal(t, "https://a.example/6", got[4].URL)
	for _, l := range got {
		assert.False(t, IsCatalogPage(l.URL))
	}
}
