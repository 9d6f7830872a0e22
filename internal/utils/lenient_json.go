package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoJSON is returned when no JSON object can be recovered from the input
var ErrNoJSON = errors.New("no JSON object found")

var (
	fencedBlock     = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	trailingComma   = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKey     = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	controlChars    = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
	leadingNumber   = regexp.MustCompile(`-?\d+(?:[.,]\d+)*`)
	thousandsGroups = regexp.MustCompile(`^\d{1,3}(?:[.,]\d{3})+$`)
)

// DecodeLenient decodes a JSON object out of free text produced by a model
// or scraped from a listing. It accepts:
// - plain JSON
// - JSON inside a markdown code fence
// - JSON surrounded by prose
// - trailing commas and unquoted keys
func DecodeLenient(input string, target interface{}) error {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return ErrNoJSON
	}

	candidates := []string{input}
	if m := fencedBlock.FindStringSubmatch(input); len(m) > 1 {
		candidates = append(candidates, m[1])
	}
	if obj := firstBalanced(input); obj != "" {
		candidates = append(candidates, obj)
	}

	for _, c := range candidates {
		if err := json.Unmarshal([]byte(c), target); err == nil {
			return nil
		}
	}
	for _, c := range candidates[1:] {
		if err := json.Unmarshal([]byte(repair(c)), target); err == nil {
			return nil
		}
	}
	if err := json.Unmarshal([]byte(repair(input)), target); err == nil {
		return nil
	}

	return fmt.Errorf("%w in %q", ErrNoJSON, truncate(input, 80))
}

// DecodeObject is DecodeLenient into a generic map
func DecodeObject(input string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := DecodeLenient(input, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNoJSON
	}
	return out, nil
}

// firstBalanced returns the first {...} span with balanced braces, ignoring
// braces inside string literals.
func firstBalanced(input string) string {
	start := strings.IndexByte(input, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(input); i++ {
		ch := input[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

// repair fixes the mistakes models usually make when writing JSON by hand
func repair(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = unquotedKey.ReplaceAllString(s, `$1"$2"$3`)
	return controlChars.ReplaceAllString(s, "")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// AsFloat coerces a decoded JSON value into a number. Strings such as
// "USD 150.000" or "2 dormitorios" yield their leading number; dotted or
// comma thousands groups are folded.
func AsFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		raw := leadingNumber.FindString(n)
		if raw == "" {
			return 0, false
		}
		if thousandsGroups.MatchString(raw) {
			raw = strings.NewReplacer(".", "", ",", "").Replace(raw)
		} else {
			raw = strings.ReplaceAll(raw, ",", ".")
		}
		f, err := strconv.ParseFloat(raw, 64)
		return f, err == nil
	}
	return 0, false
}

// AsInt is AsFloat truncated to an int. Values outside the int64 range
// are rejected.
func AsInt(v interface{}) (int, bool) {
	f, ok := AsFloat(v)
	if !ok || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

// AsString returns a trimmed non-empty string value
func AsString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
