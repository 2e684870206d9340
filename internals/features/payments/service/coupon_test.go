package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	model "wyffle_backend/internals/features/payments/model"
)

func coupon(typ string, value int64) *model.CouponModel {
	return &model.CouponModel{
		CouponCode:     "TOP100",
		CouponType:     typ,
		CouponValue:    value,
		CouponIsActive: true,
	}
}

func TestComputeCoupon_FlatLaunchCoupon(t *testing.T) {
	// TOP100: flat ₹100 off dari ₹399
	res := ComputeCoupon(39900, coupon(model.CouponTypeFlat, 10000), time.Now())

	assert.True(t, res.Valid)
	assert.Equal(t, int64(10000), res.Discount)
	assert.Equal(t, int64(29900), res.FinalAmount)
}

func TestComputeCoupon_Percent(t *testing.T) {
	res := ComputeCoupon(39900, coupon(model.CouponTypePercent, 50), time.Now())

	assert.True(t, res.Valid)
	assert.Equal(t, int64(19950), res.Discount)
	assert.Equal(t, int64(19950), res.FinalAmount)
}

func TestComputeCoupon_UnknownCodeKeepsBase(t *testing.T) {
	res := ComputeCoupon(39900, nil, time.Now())

	assert.False(t, res.Valid)
	assert.Equal(t, int64(0), res.Discount)
	assert.Equal(t, int64(39900), res.FinalAmount)
}

func TestComputeCoupon_InactiveAndExpired(t *testing.T) {
	cp := coupon(model.CouponTypeFlat, 10000)
	cp.CouponIsActive = false
	res := ComputeCoupon(39900, cp, time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, int64(39900), res.FinalAmount)

	past := time.Now().Add(-time.Hour)
	cp = coupon(model.CouponTypeFlat, 10000)
	cp.CouponExpiresAt = &past
	res = ComputeCoupon(39900, cp, time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, int64(39900), res.FinalAmount)
}

func TestComputeCoupon_DiscountNeverExceedsBase(t *testing.T) {
	res := ComputeCoupon(39900, coupon(model.CouponTypeFlat, 999999), time.Now())

	assert.True(t, res.Valid)
	assert.Equal(t, int64(39900), res.Discount)
	assert.Equal(t, int64(0), res.FinalAmount)
}

// Final 0 adalah hasil yang sah (max(0, base-discount)) — order seperti ini
// tidak boleh diarahkan ke gateway, apalagi dijawab 502.
func TestRequiresGateway_FullDiscountOrderSkipsGateway(t *testing.T) {
	res := ComputeCoupon(39900, coupon(model.CouponTypeFlat, 39900), time.Now())

	assert.True(t, res.Valid)
	assert.Equal(t, int64(0), res.FinalAmount)
	assert.False(t, RequiresGateway(res.FinalAmount))

	assert.True(t, RequiresGateway(29900))
	assert.False(t, RequiresGateway(-1))
}

func TestComputeCoupon_BadValuesRejected(t *testing.T) {
	// percent di luar 0..100
	res := ComputeCoupon(39900, coupon(model.CouponTypePercent, 120), time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, int64(39900), res.FinalAmount)

	// flat negatif
	res = ComputeCoupon(39900, coupon(model.CouponTypeFlat, -5), time.Now())
	assert.False(t, res.Valid)

	// tipe tidak dikenal
	res = ComputeCoupon(39900, coupon("bogo", 1), time.Now())
	assert.False(t, res.Valid)
}
