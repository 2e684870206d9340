package model

import "time"

// Jenis kupon. Flat = potongan paise langsung, percent = 0..100 dari base.
const (
	CouponTypeFlat    = "flat"
	CouponTypePercent = "percent"
)

type CouponModel struct {
	CouponCode        string     `gorm:"column:coupon_code;type:varchar(50);primaryKey" json:"coupon_code"`
	CouponType        string     `gorm:"column:coupon_type;type:varchar(10);not null" json:"coupon_type"`
	CouponValue       int64      `gorm:"column:coupon_value;not null" json:"coupon_value"`
	CouponIsActive    bool       `gorm:"column:coupon_is_active;not null;default:true" json:"coupon_is_active"`
	CouponExpiresAt   *time.Time `gorm:"column:coupon_expires_at" json:"coupon_expires_at,omitempty"`
	CouponDescription *string    `gorm:"column:coupon_description;type:text" json:"coupon_description,omitempty"`

	CouponCreatedAt time.Time `gorm:"column:coupon_created_at;autoCreateTime" json:"coupon_created_at"`
}

func (CouponModel) TableName() string { return "coupons" }

// IsUsable: aktif dan belum kedaluwarsa pada saat now.
func (m *CouponModel) IsUsable(now time.Time) bool {
	if !m.CouponIsActive {
		return false
	}
	if m.CouponExpiresAt != nil && now.After(*m.CouponExpiresAt) {
		return false
	}
	return true
}
