// Package scoring normalizes submitted results and orders them per game.
package scoring

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reClock = regexp.MustCompile(`^(\d+):(\d{1,2})(?::(\d{1,2}))?$`)
	reUnits = regexp.MustCompile(`^(?:(\d+)\s*(?:h|std|stunden?))?\s*(?:(\d+)\s*(?:m|min|minuten?))?\s*(?:(\d+)\s*(?:s|sek|sec|sekunden?))?$`)
)

// ParseDurationSeconds accepts raw seconds (number or numeric string),
// "1h 2m 3s" style text and HH:MM:SS / MM:SS clocks.
func ParseDurationSeconds(v any) (int64, bool) {
	switch d := v.(type) {
	case nil:
		return 0, false
	case int:
		return nonNegative(int64(d))
	case int32:
		return nonNegative(int64(d))
	case int64:
		return nonNegative(d)
	case *int64:
		if d == nil {
			return 0, false
		}
		return nonNegative(*d)
	case float64:
		return fromFloat(d)
	case float32:
		return fromFloat(float64(d))
	case json.Number:
		f, err := d.Float64()
		if err != nil {
			return 0, false
		}
		return fromFloat(f)
	case string:
		return parseDurationString(d)
	default:
		return 0, false
	}
}

func parseDurationString(raw string) (int64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromFloat(f)
	}

	if m := reClock.FindStringSubmatch(s); m != nil {
		a, _ := strconv.ParseInt(m[1], 10, 64)
		b, _ := strconv.ParseInt(m[2], 10, 64)
		if m[3] == "" {
			if b > 59 {
				return 0, false
			}
			return a*60 + b, true
		}
		c, _ := strconv.ParseInt(m[3], 10, 64)
		if b > 59 || c > 59 {
			return 0, false
		}
		return a*3600 + b*60 + c, true
	}

	if m := reUnits.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "" || m[3] != "") {
		var total int64
		for i, mult := range []int64{3600, 60, 1} {
			if m[i+1] == "" {
				continue
			}
			n, _ := strconv.ParseInt(m[i+1], 10, 64)
			total += n * mult
		}
		return total, true
	}
	return 0, false
}

func fromFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return nonNegative(int64(math.Round(f)))
}

func nonNegative(n int64) (int64, bool) {
	if n < 0 {
		return 0, false
	}
	return n, true
}

// ParseStars coerces numeric or numeric-string star counts; anything else is 0.
func ParseStars(v any) int {
	var f float64
	switch s := v.(type) {
	case int:
		f = float64(s)
	case int64:
		f = float64(s)
	case *int:
		if s == nil {
			return 0
		}
		f = float64(*s)
	case float64:
		f = s
	case json.Number:
		n, err := s.Float64()
		if err != nil {
			return 0
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
		if err != nil {
			return 0
		}
		f = n
	case *string:
		if s == nil {
			return 0
		}
		return ParseStars(*s)
	default:
		return 0
	}
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return int(math.Round(f))
}
