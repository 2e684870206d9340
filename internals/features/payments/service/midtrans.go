package service

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	model "wyffle_backend/internals/features/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

type CustomerInput struct {
	FullName string
	Email    string
	Phone    string
}

// RequiresGateway: order full-discount (final amount 0) tidak pernah lewat
// gateway — tidak ada yang perlu ditagih, order langsung settled.
func RequiresGateway(finalAmount int64) bool {
	return finalAmount > 0
}

// GenerateSnapToken membuat transaksi Snap untuk satu payment order.
// Gross amount di Snap = final amount (sudah diskon).
func GenerateSnapToken(o *model.PaymentOrderModel, cust CustomerInput) (string, string, error) {
	if o.PaymentFinalAmount <= 0 {
		return "", "", errors.New("invalid final_amount")
	}
	if o.PaymentOrderID == "" {
		return "", "", errors.New("order_id is required")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  o.PaymentOrderID,
			GrossAmt: o.PaymentFinalAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FullName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       o.PaymentOrderID,
				Price:    o.PaymentFinalAmount,
				Qty:      1,
				Name:     "Internship Program Fee",
				Category: "PROGRAM_FEE",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
