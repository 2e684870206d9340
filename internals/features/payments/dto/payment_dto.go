package dto

import (
	"time"

	m "wyffle_backend/internals/features/payments/model"
)

/* =============== REQUESTS =============== */

type ApplyCouponRequest struct {
	CouponCode string `json:"coupon_code" validate:"required,min=2,max=50"`
}

type CreateOrderRequest struct {
	CouponCode *string `json:"coupon_code" validate:"omitempty,min=2,max=50"`
}

// Bentuk notifikasi server-to-server Midtrans (subset field yang dipakai).
type GatewayNotification struct {
	OrderID           string `json:"order_id" validate:"required"`
	TransactionID     string `json:"transaction_id" validate:"required"`
	StatusCode        string `json:"status_code" validate:"required"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key" validate:"required"`
}

/* =============== RESPONSES =============== */

type CouponPreviewResponse struct {
	Valid       bool   `json:"valid"`
	CouponCode  string `json:"coupon_code"`
	BaseAmount  int64  `json:"base_amount"`
	Discount    int64  `json:"discount"`
	FinalAmount int64  `json:"final_amount"`
}

type PaymentOrderResponse struct {
	OrderID        string     `json:"order_id"`
	StudentUID     string     `json:"student_uid"`
	Amount         int64      `json:"amount"`
	DiscountAmount int64      `json:"discount_amount"`
	FinalAmount    int64      `json:"final_amount"`
	CouponCode     *string    `json:"coupon_code,omitempty"`
	Status         string     `json:"status"`
	SnapToken      *string    `json:"snap_token,omitempty"`
	RedirectURL    *string    `json:"redirect_url,omitempty"`
	TransactionID  *string    `json:"transaction_id,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromPaymentOrderModel(mo *m.PaymentOrderModel) PaymentOrderResponse {
	return PaymentOrderResponse{
		OrderID:        mo.PaymentOrderID,
		StudentUID:     mo.PaymentStudentUID,
		Amount:         mo.PaymentAmount,
		DiscountAmount: mo.PaymentDiscountAmount,
		FinalAmount:    mo.PaymentFinalAmount,
		CouponCode:     mo.PaymentCouponCode,
		Status:         mo.PaymentStatus,
		SnapToken:      mo.PaymentSnapToken,
		RedirectURL:    mo.PaymentRedirectURL,
		TransactionID:  mo.PaymentTransactionID,
		PaidAt:         mo.PaymentPaidAt,
		CreatedAt:      mo.PaymentCreatedAt,
	}
}

func FromPaymentOrderModels(rows []m.PaymentOrderModel) []PaymentOrderResponse {
	out := make([]PaymentOrderResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromPaymentOrderModel(&rows[i]))
	}
	return out
}
