package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const DefaultTopN = 8

// Entry is one stored result as the ranking sees it. Duration and Stars stay
// loosely typed; they are normalized before any comparison.
type Entry struct {
	GameID    string
	TeamName  string
	Name      string
	Team      string
	Duration  any
	Stars     any
	StartTime *time.Time
	GameType  string
}

type Ranked struct {
	Rank            int        `json:"rank"`
	TeamName        string     `json:"teamName"`
	Duration        string     `json:"duration,omitempty"`
	DurationSeconds *int64     `json:"durationSeconds,omitempty"`
	Stars           int        `json:"stars"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	GameType        string     `json:"gameType,omitempty"`
}

// DisplayName falls back across the synonymous name fields.
func (e Entry) DisplayName() string {
	for _, n := range []string{e.TeamName, e.Name, e.Team} {
		if s := strings.TrimSpace(n); s != "" {
			return s
		}
	}
	return "Team"
}

type scored struct {
	Entry
	secs    int64
	secsOK  bool
	stars   int
	display string
}

// TopN groups entries by game, sorts each group by its majority mode and
// truncates to n (DefaultTopN when n <= 0). Every requested id is present in
// the result, games without results map to an empty slice.
func TopN(gameIDs []string, entries []Entry, n int) map[string][]Ranked {
	if n <= 0 {
		n = DefaultTopN
	}
	byGame := make(map[string][]Entry, len(gameIDs))
	for _, e := range entries {
		byGame[e.GameID] = append(byGame[e.GameID], e)
	}

	out := make(map[string][]Ranked, len(gameIDs))
	for _, id := range gameIDs {
		if _, done := out[id]; done {
			continue
		}
		out[id] = Rank(byGame[id], DetermineMode(byGame[id]), n)
	}
	return out
}

// Rank sorts entries for the given mode and keeps the first n.
func Rank(entries []Entry, mode Mode, n int) []Ranked {
	rows := make([]scored, 0, len(entries))
	for _, e := range entries {
		secs, ok := ParseDurationSeconds(e.Duration)
		rows = append(rows, scored{
			Entry:   e,
			secs:    secs,
			secsOK:  ok,
			stars:   ParseStars(e.Stars),
			display: e.DisplayName(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch mode {
		case ModeStars:
			if a.stars != b.stars {
				return a.stars > b.stars
			}
		case ModeRecent:
			at, bt := startUnix(a.StartTime), startUnix(b.StartTime)
			if at != bt {
				return at > bt
			}
			return a.display < b.display
		default:
			if a.secsOK != b.secsOK {
				return a.secsOK
			}
			if a.secsOK && a.secs != b.secs {
				return a.secs < b.secs
			}
		}
		at, bt := startUnix(a.StartTime), startUnix(b.StartTime)
		if at != bt {
			return at < bt
		}
		return a.display < b.display
	})

	if len(rows) > n {
		rows = rows[:n]
	}
	out := make([]Ranked, 0, len(rows))
	for i, r := range rows {
		rk := Ranked{
			Rank:      i + 1,
			TeamName:  r.display,
			Duration:  durationLabel(r.Duration),
			Stars:     r.stars,
			StartTime: r.StartTime,
			GameType:  r.GameType,
		}
		if r.secsOK {
			secs := r.secs
			rk.DurationSeconds = &secs
		}
		out = append(out, rk)
	}
	return out
}

// missing start time counts as the earliest possible
func startUnix(t *time.Time) int64 {
	if t == nil {
		return -1 << 62
	}
	return t.Unix()
}

func durationLabel(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if secs, ok := ParseDurationSeconds(v); ok {
		return FormatClock(secs)
	}
	return ""
}

// FormatClock renders seconds as HH:MM:SS.
func FormatClock(secs int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}
