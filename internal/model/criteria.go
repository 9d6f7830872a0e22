package model

import "inmobot/internal/utils"

// PropertyType is the kind of property the user is looking for
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyLand      PropertyType = "land"
)

// QueryTerm returns the Spanish word used in listing searches
func (p PropertyType) QueryTerm() string {
	switch p {
	case PropertyApartment:
		return "apartamento"
	case PropertyHouse:
		return "casa"
	case PropertyLand:
		return "terreno"
	}
	return ""
}

// TransactionType is rent or sale
type TransactionType string

const (
	TransactionRent TransactionType = "rent"
	TransactionSale TransactionType = "sale"
)

// QueryTerm returns the Spanish word used in listing searches
func (t TransactionType) QueryTerm() string {
	switch t {
	case TransactionRent:
		return "alquiler"
	case TransactionSale:
		return "venta"
	}
	return ""
}

// RentalPeriod is the rental duration the user mentioned
type RentalPeriod string

const (
	RentalAnnual   RentalPeriod = "annual"
	RentalMonthly  RentalPeriod = "monthly"
	RentalBiweekly RentalPeriod = "biweekly"
	RentalSeasonal RentalPeriod = "seasonal"
	RentalWinter   RentalPeriod = "winter"
)

// Criteria represents the structured filters extracted from a conversation.
// A field is set only when a pattern matched; nil or empty means unknown.
type Criteria struct {
	PropertyType    PropertyType    `json:"propertyType,omitempty"`
	TransactionType TransactionType `json:"transactionType,omitempty"`
	Zone            string          `json:"zone,omitempty"`
	BudgetUSD       *int            `json:"budgetUSD,omitempty"`
	Bedrooms        *int            `json:"bedrooms,omitempty"`
	Bathrooms       *int            `json:"bathrooms,omitempty"`
	RentalPeriod    RentalPeriod    `json:"rentalPeriod,omitempty"`
}

// FieldCount returns how many criteria fields are known
func (c Criteria) FieldCount() int {
	n := 0
	if c.PropertyType != "" {
		n++
	}
	if c.TransactionType != "" {
		n++
	}
	if c.Zone != "" {
		n++
	}
	if c.BudgetUSD != nil {
		n++
	}
	if c.Bedrooms != nil {
		n++
	}
	if c.Bathrooms != nil {
		n++
	}
	if c.RentalPeriod != "" {
		n++
	}
	return n
}

// AsMap converts the criteria into the free-form filter object stored with a profile
func (c Criteria) AsMap() JSONMap {
	m := JSONMap{}
	if c.PropertyType != "" {
		m["propertyType"] = string(c.PropertyType)
	}
	if c.TransactionType != "" {
		m["transactionType"] = string(c.TransactionType)
	}
	if c.Zone != "" {
		m["zone"] = c.Zone
	}
	if c.BudgetUSD != nil {
		m["budgetUSD"] = *c.BudgetUSD
	}
	if c.Bedrooms != nil {
		m["bedrooms"] = *c.Bedrooms
	}
	if c.Bathrooms != nil {
		m["bathrooms"] = *c.Bathrooms
	}
	if c.RentalPeriod != "" {
		m["rentalPeriod"] = string(c.RentalPeriod)
	}
	return m
}

// FillFrom returns c with every unset field taken from other
func (c Criteria) FillFrom(other Criteria) Criteria {
	if c.PropertyType == "" {
		c.PropertyType = other.PropertyType
	}
	if c.TransactionType == "" {
		c.TransactionType = other.TransactionType
	}
	if c.Zone == "" {
		c.Zone = other.Zone
	}
	if c.BudgetUSD == nil {
		c.BudgetUSD = other.BudgetUSD
	}
	if c.Bedrooms == nil {
		c.Bedrooms = other.Bedrooms
	}
	if c.Bathrooms == nil {
		c.Bathrooms = other.Bathrooms
	}
	if c.RentalPeriod == "" {
		c.RentalPeriod = other.RentalPeriod
	}
	return c
}

// CriteriaFromMap reads criteria back from a stored filter object. Unknown
// enum values and non-numeric counts are ignored.
func CriteriaFromMap(m map[string]interface{}) Criteria {
	var c Criteria
	if m == nil {
		return c
	}

	if s, ok := utils.AsString(m["propertyType"]); ok {
		switch p := PropertyType(s); p {
		case PropertyApartment, PropertyHouse, PropertyLand:
			c.PropertyType = p
		}
	}
	if s, ok := utils.AsString(m["transactionType"]); ok {
		switch t := TransactionType(s); t {
		case TransactionRent, TransactionSale:
			c.TransactionType = t
		}
	}
	if s, ok := utils.AsString(m["rentalPeriod"]); ok {
		switch r := RentalPeriod(s); r {
		case RentalAnnual, RentalMonthly, RentalBiweekly, RentalSeasonal, RentalWinter:
			c.RentalPeriod = r
		}
	}
	if s, ok := utils.AsString(m["zone"]); ok {
		c.Zone = s
	}
	c.BudgetUSD = positive(m["budgetUSD"])
	c.Bedrooms = nonNegative(m["bedrooms"])
	c.Bathrooms = nonNegative(m["bathrooms"])
	return c
}

func positive(v interface{}) *int {
	n, ok := utils.AsInt(v)
	if !ok || n <= 0 {
		return nil
	}
	return &n
}

func nonNegative(v interface{}) *int {
	n, ok := utils.AsInt(v)
	if !ok || n < 0 {
		return nil
	}
	return &n
}
