package extractor

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"inmobot/internal/model"
	"inmobot/internal/utils"
)

type rule[T any] struct {
	pattern *regexp.Regexp
	value   T
}

// Rule tables are evaluated top to bottom; within a category a later
// match overwrites an earlier one.
var (
	propertyTypeRules = []rule[model.PropertyType]{
		{regexp.MustCompile(`apartamento|apto`), model.PropertyApartment},
		{regexp.MustCompile(`casa`), model.PropertyHouse},
		{regexp.MustCompile(`terreno`), model.PropertyLand},
	}

	transactionRules = []rule[model.TransactionType]{
		{regexp.MustCompile(`alquil|rent`), model.TransactionRent},
		{regexp.MustCompile(`compr|venta|buy`), model.TransactionSale},
	}

	rentalPeriodRules = []rule[model.RentalPeriod]{
		{regexp.MustCompile(`anual`), model.RentalAnnual},
		{regexp.MustCompile(`mensual|mes`), model.RentalMonthly},
		{regexp.MustCompile(`quincenal`), model.RentalBiweekly},
		{regexp.MustCompile(`temporada`), model.RentalSeasonal},
		{regexp.MustCompile(`invierno`), model.RentalWinter},
	}

	budgetPattern   = regexp.MustCompile(`(\d+)\s*(mil|k|usd|u\$s|d[oó]lares?)\b`)
	bedroomPattern  = regexp.MustCompile(`(\d+)\s*(?:dormitorio|habitaci[oó]n|cuarto|dorm)`)
	bathroomPattern = regexp.MustCompile(`(\d+)\s*ba[ñn]o`)

	// zonePrepositionPattern captures the word after "en", "zona" or "barrio"
	zonePrepositionPattern = regexp.MustCompile(`\b(?:en|zona|barrio)\s+([a-záéíóúñü\s]+?)(?:\s+|,|\.|\?|$)`)
)

// zoneRules are tried in order and the first hit wins. Without useGroup
// the whole match is the zone.
var zoneRules = []struct {
	pattern  *regexp.Regexp
	useGroup bool
}{
	{zonePrepositionPattern, true},
	{regexp.MustCompile(`la\s+mansa`), false},
	{regexp.MustCompile(`punta\s+del\s+este`), false},
	{regexp.MustCompile(`pocitos|carrasco|centro|ciudad\s+vieja|parque\s+rod[oó]`), false},
}

// KnownZones canonicalises neighbourhood spellings. Unknown zones are kept
// as typed.
var KnownZones = []utils.Alias{
	{Canonical: "La Mansa, Punta del Este", Aliases: []string{"la mansa", "playa mansa"}},
	{Canonical: "Punta del Este", Aliases: []string{"punta del este", "pde"}},
	{Canonical: "Ciudad Vieja", Aliases: []string{"ciudad vieja"}},
	{Canonical: "Parque Rodó", Aliases: []string{"parque rodó"}},
	{Canonical: "Punta Carretas", Aliases: []string{"punta carretas"}},
	{Canonical: "Pocitos", Aliases: []string{"pocitos"}},
	{Canonical: "Carrasco", Aliases: []string{"carrasco"}},
	{Canonical: "Centro", Aliases: []string{"centro"}},
	{Canonical: "Cordón", Aliases: []string{"cordón"}},
	{Canonical: "Malvín", Aliases: []string{"malvín"}},
	{Canonical: "Buceo", Aliases: []string{"buceo"}},
	{Canonical: "Montevideo", Aliases: []string{"montevideo"}},
}

// zoneStopWords are words that follow "en" without naming a place
// ("en alquiler", "en la playa").
var zoneStopWords = map[string]bool{
	"alquiler": true, "venta": true, "el": true, "la": true, "los": true, "las": true,
	"un": true, "una": true, "lo": true, "mi": true, "que": true, "cuanto": true,
	"dolares": true, "usd": true, "pesos": true, "total": true, "general": true,
	"uruguay": true,
}

// RuleExtractor is the pattern-table extractor. It is a pure function of
// its input.
type RuleExtractor struct{}

// NewRuleExtractor creates a rule-based extractor
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// Extract implements Extractor
func (e *RuleExtractor) Extract(_ context.Context, text string) model.Criteria {
	return ExtractRules(text)
}

// ExtractRules runs every rule table over text
func ExtractRules(text string) model.Criteria {
	text = strings.ToLower(text)
	var c model.Criteria

	c.PropertyType = lastMatch(text, propertyTypeRules)
	c.TransactionType = lastMatch(text, transactionRules)
	c.RentalPeriod = lastMatch(text, rentalPeriodRules)

	c.BudgetUSD = extractBudget(text)
	c.Bedrooms = firstInt(bedroomPattern, text)
	c.Bathrooms = firstInt(bathroomPattern, text)
	c.Zone = extractZone(text)

	return c
}

// extractBudget reads the first amount with a currency or thousands unit.
// Zero and amounts that overflow int after scaling are not budgets.
func extractBudget(text string) *int {
	m := budgetPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return nil
	}
	if m[2] == "mil" || m[2] == "k" {
		if n > math.MaxInt/1000 {
			return nil
		}
		n *= 1000
	}
	return &n
}

func lastMatch[T comparable](text string, rules []rule[T]) T {
	var out T
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			out = r.value
		}
	}
	return out
}

func firstInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

func extractZone(text string) string {
	for _, zr := range zoneRules {
		if !zr.useGroup {
			if m := zr.pattern.FindString(text); m != "" {
				return CanonicalZone(m)
			}
			continue
		}

		for _, idx := range zr.pattern.FindAllStringSubmatchIndex(text, -1) {
			rest := text[idx[2]:]
			if zone, ok := knownZonePrefix(rest); ok {
				return zone
			}
			word := utils.CollapseSpaces(text[idx[2]:idx[3]])
			if word == "" || zoneStopWords[utils.FoldAccents(word)] {
				continue
			}
			return CanonicalZone(word)
		}
	}
	return ""
}

// knownZonePrefix reports the known zone that text starts with, so
// multi-word names like "punta del este" survive the one-word capture.
func knownZonePrefix(text string) (string, bool) {
	folded := utils.FoldAccents(text)
	for _, z := range KnownZones {
		for _, a := range z.Aliases {
			fa := utils.FoldAccents(a)
			if strings.HasPrefix(folded, fa) && (len(folded) == len(fa) || !isLetter(folded[len(fa)])) {
				return z.Canonical, true
			}
		}
	}
	return "", false
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// CanonicalZone returns the known spelling of zone, or zone trimmed
func CanonicalZone(zone string) string {
	zone = utils.CollapseSpaces(zone)
	if canonical, ok := utils.AliasMatch(zone, KnownZones); ok {
		return canonical
	}
	return zone
}
