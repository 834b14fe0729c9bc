package model

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrInvalidCoupon = errors.New("invalid coupon code")

var (
	minPercent = decimal.Zero
	maxPercent = decimal.NewFromInt(100)
)

// CouponTable maps coupon code to discount percentage.
type CouponTable map[string]decimal.Decimal

// Percent returns the discount for code, rejecting unknown codes and percentages outside 0-100.
func (t CouponTable) Percent(code string) (decimal.Decimal, error) {
	percent, ok := t[code]
	if !ok {
		return decimal.Zero, ErrInvalidCoupon
	}
	if percent.LessThan(minPercent) || percent.GreaterThan(maxPercent) {
		return decimal.Zero, errors.Wrapf(ErrInvalidCoupon, "discount %s%% is out of range", percent)
	}
	return percent, nil
}

type CouponRepository interface {
	Load() (CouponTable, error)
}
