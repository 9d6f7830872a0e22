package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobot/internal/model"
)

func TestMockListings(t *testing.T) {
	got := MockListings(model.Criteria{
		PropertyType:    model.PropertyApartment,
		TransactionType: model.TransactionSale,
		Zone:            "Pocitos",
		Bedrooms:        intPtr(3),
	})

	require.Len(t, got, 3)
	assert.Equal(t, "Apartamento de 3 dormitorios en Pocitos", got[0].Title)
	assert.Equal(t, "Apartamento en Pocitos - venta", got[1].Title)
	assert.Equal(t, "Apartamento con balcón en Pocitos", got[2].Title)
	assert.Contains(t, got[0].URL, "mercadolibre.com.uy")
	assert.Contains(t, got[1].URL, "infocasas.com.uy")
	assert.Contains(t, got[2].URL, "veocasas.com")
	for _, l := range got {
		assert.Equal(t, 0.95, l.Score)
		assert.JSONEq(t, `{"bedrooms": 3, "bathrooms": null}`, l.Content)
	}
}

func TestMockListings_Defaults(t *testing.T) {
	got := MockListings(model.Criteria{})

	assert.Equal(t, "Propiedad de 2 dormitorios en Montevideo", got[0].Title)
	assert.Equal(t, "Propiedad en Montevideo - alquiler", got[1].Title)
	assert.JSONEq(t, `{"bedrooms": null, "bathrooms": null}`, got[0].Content)
}

func TestMockListings_ExplicitZeroBedrooms(t *testing.T) {
	got := MockListings(model.Criteria{PropertyType: model.PropertyHouse, Bedrooms: intPtr(0)})

	assert.Equal(t, "Casa de 0 dormitorios en Montevideo", got[0].Title)
}
