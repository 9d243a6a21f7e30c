package cart

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/starsoft-labs/nft-market-api/models"
)

// normalizeQuantity coerces an arbitrary decoded value into a valid line
// quantity: at least 1, fractional amounts floored. Values beyond the int
// range clamp to MaxInt; converting them directly would wrap negative and
// break the >= 1 invariant.
func normalizeQuantity(value any) int {
	num, ok := toNumber(value)
	if !ok || num < 1 {
		return 1
	}
	if num >= math.MaxInt {
		return math.MaxInt
	}
	return int(math.Floor(num))
}

// normalizePrice returns the value as a non-negative finite price, or false
// when it cannot be trusted as one.
func normalizePrice(value any) (float64, bool) {
	num, ok := toNumber(value)
	if !ok || num < 0 {
		return 0, false
	}
	return num, true
}

// normalizeText keeps text as-is and turns everything else into "".
func normalizeText(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return s
}

// toNumber accepts the numeric shapes a decoded JSON payload can carry, plus
// numeric-looking text. Quantities and prices stored by older clients often
// arrive as strings. NaN and infinities are rejected outright.
func toNumber(value any) (float64, bool) {
	var num float64
	switch v := value.(type) {
	case float64:
		num = v
	case float32:
		num = float64(v)
	case int:
		num = float64(v)
	case int32:
		num = float64(v)
	case int64:
		num = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		num = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		num = f
	default:
		return 0, false
	}
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, false
	}
	return num, true
}

// SanitizeLines converts an untrusted payload (typically the raw "items"
// array read back from the durable slot) into valid cart lines. Anything
// that is not an ordered sequence yields an empty cart. Entries that are not
// objects, have a blank id, or carry an invalid price are dropped; survivors
// keep their relative order. Sanitizing already-sanitized lines yields the
// same lines.
func SanitizeLines(input any) []models.CartLine {
	switch raw := input.(type) {
	case []models.CartLine:
		lines := make([]models.CartLine, 0, len(raw))
		for _, entry := range raw {
			if line, ok := sanitizeTyped(entry); ok {
				lines = append(lines, line)
			}
		}
		return lines
	case []any:
		lines := make([]models.CartLine, 0, len(raw))
		for _, entry := range raw {
			record, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if line, ok := sanitizeRecord(record); ok {
				lines = append(lines, line)
			}
		}
		return lines
	default:
		return []models.CartLine{}
	}
}

func sanitizeRecord(record map[string]any) (models.CartLine, bool) {
	id := strings.TrimSpace(normalizeText(record["id"]))
	price, ok := normalizePrice(record["price"])
	if id == "" || !ok {
		return models.CartLine{}, false
	}

	return models.CartLine{
		ID:          id,
		Name:        normalizeText(record["name"]),
		Description: normalizeText(record["description"]),
		Price:       price,
		Image:       normalizeText(record["image"]),
		Quantity:    normalizeQuantity(record["quantity"]),
	}, true
}

func sanitizeTyped(entry models.CartLine) (models.CartLine, bool) {
	id := strings.TrimSpace(entry.ID)
	price, ok := normalizePrice(entry.Price)
	if id == "" || !ok {
		return models.CartLine{}, false
	}

	entry.ID = id
	entry.Price = price
	entry.Quantity = normalizeQuantity(entry.Quantity)
	return entry, true
}
