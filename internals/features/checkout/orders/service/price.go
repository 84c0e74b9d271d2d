package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"kiezjagd_backend/internals/helpers/apperr"
)

var errPriceInvalid = apperr.Invalid(apperr.CodePriceInvalid, "Preis ist ungültig.")

// ParsePrice accepts plain numbers and the localized strings the catalog has
// accumulated ("12,90 €", "€ 10", "1.234,50", "9.99"). The result is rounded
// to cents.
func ParsePrice(raw any) (decimal.Decimal, error) {
	var d decimal.Decimal
	switch v := raw.(type) {
	case decimal.Decimal:
		d = v
	case float64:
		d = decimal.NewFromFloat(v)
	case float32:
		d = decimal.NewFromFloat32(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case string:
		parsed, ok := parsePriceString(v)
		if !ok {
			return decimal.Zero, errPriceInvalid
		}
		d = parsed
	default:
		return decimal.Zero, errPriceInvalid
	}
	if d.IsNegative() {
		return decimal.Zero, errPriceInvalid
	}
	return d.Round(2), nil
}

func parsePriceString(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	num := b.String()
	if num == "" {
		return decimal.Zero, false
	}

	lastComma := strings.LastIndex(num, ",")
	lastDot := strings.LastIndex(num, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		// whichever separator comes last is the decimal one
		if lastComma > lastDot {
			num = strings.ReplaceAll(num, ".", "")
			num = strings.Replace(num, ",", ".", 1)
		} else {
			num = strings.ReplaceAll(num, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(num, ",") > 1 {
			num = strings.ReplaceAll(num, ",", "")
		} else {
			num = strings.Replace(num, ",", ".", 1)
		}
	case strings.Count(num, ".") > 1:
		num = strings.ReplaceAll(num, ".", "")
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
