package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"kiezjagd_backend/internals/features/checkout/payments/gateway"
	"kiezjagd_backend/internals/helpers/apperr"
)

type DiscountType string

const (
	DiscountPromotion DiscountType = "promotion"
	DiscountCoupon    DiscountType = "coupon"
)

type Discount struct {
	Type DiscountType `json:"type"`
	ID   string       `json:"id"`
}

// Catalog is the provider side of discount lookups.
type Catalog interface {
	FindPromotionCode(ctx context.Context, code string, activeOnly bool) (*gateway.PromotionCode, error)
	GetCoupon(ctx context.Context, id string) (*gateway.Coupon, error)
}

// ErrPromoInactive: the code exists at the provider but can no longer be redeemed.
var ErrPromoInactive = apperr.Invalid(apperr.CodePromoInactive,
	"Dieser Gutscheincode ist nicht mehr aktiv (Limit/Ablauf/Deaktivierung).")

var (
	rePromoPrefix = regexp.MustCompile(`(?i)^promo_`)
	rePromoID     = regexp.MustCompile(`(?i)^promo_\w+$`)
	reCouponID    = regexp.MustCompile(`(?i)^coupon_\w+$`)
	reToken       = regexp.MustCompile(`^[A-Za-z0-9]{6,}$`)
)

type Resolver struct {
	catalog Catalog
	timeout time.Duration
}

func NewResolver(catalog Catalog, timeout time.Duration) *Resolver {
	return &Resolver{catalog: catalog, timeout: timeout}
}

// Resolve maps a customer code to a provider discount. nil, nil means no
// discount matched. Lookup failures fall through to the next strategy; only
// ErrPromoInactive is surfaced.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Discount, error) {
	code := NormalizeCode(raw)
	if code == "" {
		return nil, nil
	}

	// Human-readable codes ("KJ-2025") are never tried as coupons.
	if strings.Contains(code, "-") || rePromoPrefix.MatchString(code) {
		if pc := r.findPromotion(ctx, code, true); pc != nil {
			return &Discount{Type: DiscountPromotion, ID: pc.ID}, nil
		}
		if pc := r.findPromotion(ctx, code, false); pc != nil {
			return nil, ErrPromoInactive
		}
		if rePromoID.MatchString(code) {
			return &Discount{Type: DiscountPromotion, ID: code}, nil
		}
		return nil, nil
	}

	if reCouponID.MatchString(code) || reToken.MatchString(code) {
		if c := r.getCoupon(ctx, code); c != nil && c.Valid {
			return &Discount{Type: DiscountCoupon, ID: c.ID}, nil
		}
	}

	if pc := r.findPromotion(ctx, code, true); pc != nil {
		return &Discount{Type: DiscountPromotion, ID: pc.ID}, nil
	}
	return nil, nil
}

func (r *Resolver) findPromotion(ctx context.Context, code string, activeOnly bool) *gateway.PromotionCode {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	pc, err := r.catalog.FindPromotionCode(ctx, code, activeOnly)
	if err != nil {
		return nil
	}
	return pc
}

func (r *Resolver) getCoupon(ctx context.Context, id string) *gateway.Coupon {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	c, err := r.catalog.GetCoupon(ctx, id)
	if err != nil {
		return nil
	}
	return c
}

func (r *Resolver) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// IsInactive reports whether err is the inactive-code outcome.
func IsInactive(err error) bool {
	return errors.Is(err, ErrPromoInactive)
}
