package scoring

import "strings"

type Mode string

const (
	ModeFastest Mode = "fastest"
	ModeStars   Mode = "stars"
	ModeRecent  Mode = "recent"
)

// ModeOf maps a free-form game type label. The shop sells Maxi (time),
// Medi (stars) and Mini (recent) editions.
func ModeOf(label string) (Mode, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case l == "":
		return "", false
	case strings.Contains(l, "maxi"), strings.Contains(l, "fastest"),
		strings.Contains(l, "time"), strings.Contains(l, "zeit"), strings.Contains(l, "schnell"):
		return ModeFastest, true
	case strings.Contains(l, "medi"), strings.Contains(l, "star"), strings.Contains(l, "stern"):
		return ModeStars, true
	case strings.Contains(l, "mini"), strings.Contains(l, "recent"), strings.Contains(l, "datum"):
		return ModeRecent, true
	}
	return "", false
}

// DetermineMode takes the majority label; ties and unlabeled history fall
// back to fastest.
func DetermineMode(entries []Entry) Mode {
	counts := map[Mode]int{}
	for _, e := range entries {
		if m, ok := ModeOf(e.GameType); ok {
			counts[m]++
		}
	}
	best, bestN, tie := ModeFastest, 0, false
	for _, m := range []Mode{ModeFastest, ModeStars, ModeRecent} {
		switch n := counts[m]; {
		case n > bestN:
			best, bestN, tie = m, n, false
		case n == bestN && n > 0:
			tie = true
		}
	}
	if bestN == 0 || tie {
		return ModeFastest
	}
	return best
}
