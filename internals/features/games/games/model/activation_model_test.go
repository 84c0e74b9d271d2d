package model

import (
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func utc(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, time.UTC)
}

func tp(t time.Time) *time.Time { return &t }

func TestIsActiveNow_NilAndDisabled(t *testing.T) {
	now := utc(2025, time.July, 1, 12, 0, 0)

	var a *Activation
	assert.Equal(t, false, a.IsActiveNow(now))
	assert.Equal(t, false, IsActiveNow(nil, now))

	disabled := &Activation{Enabled: false, From: tp(utc(2025, 1, 1, 0, 0, 0)), Until: tp(utc(2025, 12, 31, 0, 0, 0))}
	assert.Equal(t, false, disabled.IsActiveNow(now))

	open := &Activation{Enabled: true}
	assert.Equal(t, true, open.IsActiveNow(now))
}

func TestIsActiveNow_FixedWindow(t *testing.T) {
	d1 := utc(2025, time.March, 1, 10, 0, 0)
	d2 := utc(2025, time.March, 31, 18, 0, 0)
	a := &Activation{Enabled: true, From: &d1, Until: &d2}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"at from", d1, true},
		{"at until", d2, true},
		{"inside", utc(2025, time.March, 15, 0, 0, 0), true},
		{"just before", d1.Add(-time.Second), false},
		{"just after", d2.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.IsActiveNow(tc.now))
		})
	}

	onlyFrom := &Activation{Enabled: true, From: &d1}
	assert.Equal(t, true, onlyFrom.IsActiveNow(utc(2030, 1, 1, 0, 0, 0)))
	assert.Equal(t, false, onlyFrom.IsActiveNow(d1.Add(-time.Minute)))

	onlyUntil := &Activation{Enabled: true, Until: &d2}
	assert.Equal(t, true, onlyUntil.IsActiveNow(utc(2000, 1, 1, 0, 0, 0)))
	assert.Equal(t, false, onlyUntil.IsActiveNow(d2.Add(time.Minute)))
}

func TestIsActiveNow_YearlySameYear(t *testing.T) {
	// configured in 2021, evaluated in other years
	a := &Activation{
		Enabled:      true,
		From:         tp(utc(2021, time.June, 1, 0, 0, 0)),
		Until:        tp(utc(2021, time.August, 31, 23, 59, 59)),
		RepeatYearly: true,
	}

	for _, year := range []int{2024, 2025, 2031} {
		assert.Equal(t, true, a.IsActiveNow(utc(year, time.July, 15, 12, 0, 0)))
		assert.Equal(t, false, a.IsActiveNow(utc(year, time.September, 1, 0, 0, 0)))
		assert.Equal(t, false, a.IsActiveNow(utc(year, time.May, 31, 12, 0, 0)))
	}
}

func TestIsActiveNow_YearlyCrossYear(t *testing.T) {
	a := &Activation{
		Enabled:      true,
		From:         tp(utc(2022, time.November, 1, 0, 0, 0)),
		Until:        tp(utc(2023, time.February, 15, 23, 59, 59)),
		RepeatYearly: true,
	}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"jan 10 uses previous year's start", utc(2026, time.January, 10, 8, 0, 0), true},
		{"dec 20 uses next year's end", utc(2025, time.December, 20, 8, 0, 0), true},
		{"nov 1 start instant", utc(2025, time.November, 1, 0, 0, 0), true},
		{"feb 15 end of day", utc(2026, time.February, 15, 23, 59, 59), true},
		{"mar 1", utc(2026, time.March, 1, 0, 0, 0), false},
		{"oct 1", utc(2025, time.October, 1, 0, 0, 0), false},
		{"feb 16", utc(2026, time.February, 16, 0, 0, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.IsActiveNow(tc.now))
		})
	}
}

func TestIsActiveNow_YearlyNeedsBothEnds(t *testing.T) {
	now := utc(2025, time.July, 1, 0, 0, 0)
	a := &Activation{Enabled: true, From: tp(utc(2020, time.January, 1, 0, 0, 0)), RepeatYearly: true}
	assert.Equal(t, false, a.IsActiveNow(now))

	b := &Activation{Enabled: true, Until: tp(utc(2020, time.December, 31, 0, 0, 0)), RepeatYearly: true}
	assert.Equal(t, false, b.IsActiveNow(now))
}

func TestIsActiveNow_YearlyUsesUTC(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	a := &Activation{
		Enabled:      true,
		From:         tp(utc(2020, time.June, 1, 0, 0, 0)),
		Until:        tp(utc(2020, time.June, 30, 23, 59, 59)),
		RepeatYearly: true,
	}
	// 01:00 local on Jul 1 is still Jun 30 23:00 UTC
	assert.Equal(t, true, a.IsActiveNow(time.Date(2025, time.July, 1, 1, 0, 0, 0, berlin)))
	assert.Equal(t, false, a.IsActiveNow(time.Date(2025, time.July, 1, 3, 0, 0, 0, berlin)))
}
