package helper

import (
	"strings"
)

// SafeOrderClause turns "-createdAt" / "email" into an ORDER BY fragment using
// a whitelist of API keys → columns. Unknown keys fall back to defaultKey.
// A leading '-' means descending. Empty result: defaultKey is not allowed either.
func SafeOrderClause(raw string, allowed map[string]string, defaultKey string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultKey
	}

	dir := "ASC"
	key := raw
	if strings.HasPrefix(raw, "-") {
		dir = "DESC"
		key = strings.TrimPrefix(raw, "-")
	}

	col, ok := allowed[key]
	if !ok {
		if raw == defaultKey {
			return ""
		}
		return SafeOrderClause(defaultKey, allowed, defaultKey)
	}
	return col + " " + dir
}
