package service

import (
	"time"

	model "wyffle_backend/internals/features/payments/model"
)

// Hasil aritmetika kupon. Kalau Valid=false, Discount=0 dan
// FinalAmount=base — base fee tidak pernah ikut rusak karena kupon jelek.
type CouponResult struct {
	Valid       bool
	Code        string
	Discount    int64
	FinalAmount int64
}

// ComputeCoupon: fungsi murni atas snapshot kupon. nil coupon = kode tidak
// dikenal. Semua angka minor unit (paise), final tidak pernah negatif.
func ComputeCoupon(base int64, coupon *model.CouponModel, now time.Time) CouponResult {
	out := CouponResult{Valid: false, Discount: 0, FinalAmount: base}
	if coupon == nil || !coupon.IsUsable(now) {
		return out
	}

	var discount int64
	switch coupon.CouponType {
	case model.CouponTypeFlat:
		discount = coupon.CouponValue
	case model.CouponTypePercent:
		if coupon.CouponValue < 0 || coupon.CouponValue > 100 {
			return out
		}
		discount = base * coupon.CouponValue / 100
	default:
		return out
	}

	if discount < 0 {
		return out
	}
	if discount > base {
		discount = base
	}
	return CouponResult{
		Valid:       true,
		Code:        coupon.CouponCode,
		Discount:    discount,
		FinalAmount: base - discount,
	}
}
