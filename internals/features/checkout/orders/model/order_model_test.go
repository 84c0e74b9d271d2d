package model

import (
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func TestIsLinkValidBoundary(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		end     time.Time
		expired bool
		want    bool
	}{
		{"one second past", now.Add(-time.Second), false, false},
		{"one second left", now.Add(time.Second), false, true},
		{"exactly at end", now, false, true},
		{"flag wins", now.Add(time.Hour), true, false},
	}
	for _, c := range cases {
		o := OrderModel{OrderEndTime: c.end, OrderIsExpired: c.expired}
		assert.Equal(t, c.want, o.IsLinkValid(now), c.name)
	}
}

func TestIsLinkValidIgnoresPaymentStatus(t *testing.T) {
	now := time.Now()
	for _, st := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed} {
		o := OrderModel{OrderEndTime: now.Add(time.Minute), OrderPaymentStatus: st}
		assert.Equal(t, true, o.IsLinkValid(now), string(st))
	}
}
