// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"sync"
	"time"
)

// Zone is the timezone the game operates in; invoice numbers and
// request logs use it, storage stays UTC.
const Zone = "Europe/Berlin"

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location returns Europe/Berlin, or UTC when tzdata is unavailable.
func Location() *time.Location {
	locOnce.Do(func() {
		l, err := time.LoadLocation(Zone)
		if err != nil {
			l = time.UTC
		}
		loc = l
	})
	return loc
}

// Local converts a stored (UTC) time for display. Zero stays zero.
func Local(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Location())
}

// LocalPtr is Local for nullable columns.
func LocalPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := Local(*t)
	return &v
}

// DayStamp formats t as YYYYMMDD in the local zone.
func DayStamp(t time.Time) string {
	return t.In(Location()).Format("20060102")
}
