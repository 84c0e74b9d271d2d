// file: internals/features/games/games/model/activation_model.go
package model

import "time"

/*
  Activation = play window of a game
  - enabled=false → never active
  - repeatYearly=false → plain [from, until], open ends allowed
  - repeatYearly=true  → month/day/time of from & until projected onto the
    current UTC year; a window whose end lies before its start wraps Jan 1
*/

type Activation struct {
	Enabled      bool       `json:"enabled"`
	From         *time.Time `json:"from"`
	Until        *time.Time `json:"until"`
	RepeatYearly bool       `json:"repeatYearly"`
}

// IsActiveNow is safe on a nil receiver (no activation block → inactive).
func (a *Activation) IsActiveNow(now time.Time) bool {
	return IsActiveNow(a, now)
}

// IsActiveNow evaluates an activation block that may come from a full Game
// row or from a list projection.
func IsActiveNow(a *Activation, now time.Time) bool {
	if a == nil || !a.Enabled {
		return false
	}
	if !a.RepeatYearly {
		if a.From != nil && now.Before(*a.From) {
			return false
		}
		if a.Until != nil && now.After(*a.Until) {
			return false
		}
		return true
	}

	if a.From == nil || a.Until == nil {
		return false
	}

	now = now.UTC()
	year := now.Year()
	from := projectOntoYear(*a.From, year)
	until := projectOntoYear(*a.Until, year)

	if !until.Before(from) {
		return within(now, from, until)
	}
	// window crosses the year boundary (e.g. Nov 1 – Feb 15)
	return within(now, from, projectOntoYear(*a.Until, year+1)) ||
		within(now, projectOntoYear(*a.From, year-1), until)
}

// projectOntoYear keeps month, day and time of day in UTC. Feb 29 in a
// non-leap year rolls over to Mar 1 like time.Date does.
func projectOntoYear(t time.Time, year int) time.Time {
	t = t.UTC()
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func within(now, from, until time.Time) bool {
	return !now.Before(from) && !now.After(until)
}
