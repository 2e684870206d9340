package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	model "wyffle_backend/internals/features/payments/model"
	studentModel "wyffle_backend/internals/features/students/model"
)

/* =========================================================
   Signature (server-to-server notification)
========================================================= */

// GrossAmountString: format gross_amount seperti yang dikirim Midtrans,
// dua desimal dari minor unit. 29900 → "29900.00".
func GrossAmountString(minor int64) string {
	return fmt.Sprintf("%d.00", minor)
}

// SignatureKey = sha512hex(order_id + status_code + gross_amount + serverKey).
func SignatureKey(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature membandingkan signature notifikasi dengan yang dihitung
// ulang dari final amount yang TERSIMPAN, bukan dari angka di payload.
func VerifySignature(got, orderID, statusCode string, storedFinalAmount int64, serverKey string) bool {
	want := SignatureKey(orderID, statusCode, GrossAmountString(storedFinalAmount), serverKey)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

/* =========================================================
   Settlement decision
========================================================= */

type SettlementOutcome int

const (
	// tidak mengubah apa pun (status transien atau tidak dikenal)
	OutcomeIgnore SettlementOutcome = iota
	OutcomePaid
	OutcomeFailed
)

// DecideSettlement memetakan transaction_status + fraud_status ke outcome.
// "capture" hanya paid kalau fraud accept; "challenge" dibiarkan pending
// sampai notifikasi berikutnya.
func DecideSettlement(transactionStatus, fraudStatus string) SettlementOutcome {
	switch transactionStatus {
	case "settlement":
		return OutcomePaid
	case "capture":
		if fraudStatus == "accept" || fraudStatus == "" {
			return OutcomePaid
		}
		return OutcomeIgnore
	case "deny", "cancel", "expire", "failure":
		return OutcomeFailed
	default:
		// "pending", "authorize", dst.
		return OutcomeIgnore
	}
}

/* =========================================================
   Settlement application (snapshot order → aksi)
========================================================= */

type SettlementAction int

const (
	ActionNone SettlementAction = iota
	ActionMarkPaid
	ActionMarkFailed
)

// SettleAction memutuskan aksi dari snapshot status order + notifikasi.
// Order yang sudah terminal tidak pernah menghasilkan aksi: notifikasi
// yang sama diterapkan dua kali berakhir di state yang sama.
func SettleAction(orderStatus, transactionStatus, fraudStatus string) SettlementAction {
	if orderStatus != model.OrderCreated {
		return ActionNone
	}
	switch DecideSettlement(transactionStatus, fraudStatus) {
	case OutcomePaid:
		return ActionMarkPaid
	case OutcomeFailed:
		return ActionMarkFailed
	default:
		return ActionNone
	}
}

// NextPaymentStatus: payment_status applicant setelah aksi settlement.
// "paid" tidak pernah turun karena notifikasi gagal yang datang terlambat.
func NextPaymentStatus(current string, action SettlementAction) string {
	switch action {
	case ActionMarkPaid:
		return studentModel.PaymentPaid
	case ActionMarkFailed:
		if current == studentModel.PaymentPaid {
			return current
		}
		return studentModel.PaymentFailed
	}
	return current
}
