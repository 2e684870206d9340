package model

import "time"

// Status order gateway. "paid" & "failed" terminal — webhook kedua dengan
// payload sama tidak mengubah apa pun.
const (
	OrderCreated = "created"
	OrderPaid    = "paid"
	OrderFailed  = "failed"
)

// Satu attempt pembayaran program fee. Amount selalu minor unit (paise).
type PaymentOrderModel struct {
	// format "WYF-<uuid>", jadi order_id di gateway sekaligus PK
	PaymentOrderID string `gorm:"column:payment_order_id;type:varchar(64);primaryKey" json:"payment_order_id"`

	PaymentStudentUID string `gorm:"column:payment_student_uid;type:varchar(128);not null;index" json:"payment_student_uid"`

	// snapshot harga pada saat create — kupon boleh berubah belakangan,
	// order lama tetap pakai angka ini
	PaymentAmount         int64   `gorm:"column:payment_amount;not null" json:"payment_amount"`
	PaymentDiscountAmount int64   `gorm:"column:payment_discount_amount;not null;default:0" json:"payment_discount_amount"`
	PaymentFinalAmount    int64   `gorm:"column:payment_final_amount;not null" json:"payment_final_amount"`
	PaymentCouponCode     *string `gorm:"column:payment_coupon_code;type:varchar(50)" json:"payment_coupon_code,omitempty"`

	PaymentStatus string `gorm:"column:payment_status;type:varchar(20);not null;default:'created';index" json:"payment_status"`

	// dari Snap saat create
	PaymentSnapToken   *string `gorm:"column:payment_snap_token;type:text" json:"payment_snap_token,omitempty"`
	PaymentRedirectURL *string `gorm:"column:payment_redirect_url;type:text" json:"payment_redirect_url,omitempty"`

	// dari notifikasi settlement
	PaymentTransactionID *string    `gorm:"column:payment_transaction_id;type:varchar(100)" json:"payment_transaction_id,omitempty"`
	PaymentPaidAt        *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time  `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt *time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`
}

func (PaymentOrderModel) TableName() string { return "payment_orders" }

func (m *PaymentOrderModel) IsTerminal() bool {
	return m.PaymentStatus == OrderPaid || m.PaymentStatus == OrderFailed
}
