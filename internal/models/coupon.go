package models

import (
	"errors"
	"strings"
)

// DiscountType is how a coupon reduces the cart total
type DiscountType string

// Discount types
const (
	DiscountPercent   DiscountType = "percent"
	DiscountFixedCart DiscountType = "fixed_cart"
)

// Coupon errors
var (
	ErrUnknownCoupon        = errors.New("coupon does not exist")
	ErrCouponAlreadyApplied = errors.New("coupon already applied")
	ErrCouponNotApplied     = errors.New("coupon is not applied")
	ErrEmptyCouponCode      = errors.New("coupon code is empty")
)

// Coupon is a discount code. Amount is a percentage for DiscountPercent
// and kopecks for DiscountFixedCart.
type Coupon struct {
	Code   string
	Type   DiscountType
	Amount int64
}

// Discount returns the reduction for subtotal, never more than subtotal
func (c Coupon) Discount(subtotal int64) int64 {
	var d int64
	switch c.Type {
	case DiscountPercent:
		d = subtotal * c.Amount / 100
	case DiscountFixedCart:
		d = c.Amount
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}

// NormalizeCouponCode trims and upper-cases a code as typed by a customer
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DefaultCoupons are the codes accepted by the practice storefront
func DefaultCoupons() map[string]Coupon {
	return map[string]Coupon{
		"GIVEMEHALYAVA": {Code: "GIVEMEHALYAVA", Type: DiscountPercent, Amount: 15},
		"SERT500":       {Code: "SERT500", Type: DiscountFixedCart, Amount: rub(500)},
	}
}
