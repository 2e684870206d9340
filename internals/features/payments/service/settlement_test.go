package service

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	model "wyffle_backend/internals/features/payments/model"
	studentModel "wyffle_backend/internals/features/students/model"
)

func TestGrossAmountString(t *testing.T) {
	assert.Equal(t, "29900.00", GrossAmountString(29900))
	assert.Equal(t, "0.00", GrossAmountString(0))
}

func TestSignatureKey_MatchesManualHash(t *testing.T) {
	orderID := "WYF-3f1c9a50-1111-2222-3333-444455556666"
	raw := orderID + "200" + "29900.00" + "server-key"
	sum := sha512.Sum512([]byte(raw))

	assert.Equal(t, hex.EncodeToString(sum[:]), SignatureKey(orderID, "200", "29900.00", "server-key"))
}

func TestVerifySignature_UsesStoredAmount(t *testing.T) {
	orderID := "WYF-abc"
	good := SignatureKey(orderID, "200", GrossAmountString(29900), "k")

	assert.True(t, VerifySignature(good, orderID, "200", 29900, "k"))

	// signature dihitung dari angka lain — gateway/payload tidak bisa
	// memaksa amount yang beda dari yang tersimpan
	forged := SignatureKey(orderID, "200", GrossAmountString(100), "k")
	assert.False(t, VerifySignature(forged, orderID, "200", 29900, "k"))

	// server key salah
	wrongKey := SignatureKey(orderID, "200", GrossAmountString(29900), "other")
	assert.False(t, VerifySignature(wrongKey, orderID, "200", 29900, "k"))
}

func TestDecideSettlement(t *testing.T) {
	cases := []struct {
		trx   string
		fraud string
		want  SettlementOutcome
	}{
		{"settlement", "", OutcomePaid},
		{"capture", "accept", OutcomePaid},
		{"capture", "", OutcomePaid},
		{"capture", "challenge", OutcomeIgnore},
		{"capture", "deny", OutcomeIgnore},
		{"deny", "", OutcomeFailed},
		{"cancel", "", OutcomeFailed},
		{"expire", "", OutcomeFailed},
		{"failure", "", OutcomeFailed},
		{"pending", "", OutcomeIgnore},
		{"authorize", "", OutcomeIgnore},
		{"garbage", "", OutcomeIgnore},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DecideSettlement(tc.trx, tc.fraud),
			"trx=%s fraud=%s", tc.trx, tc.fraud)
	}
}

func TestSettleAction_FromCreatedOrder(t *testing.T) {
	assert.Equal(t, ActionMarkPaid, SettleAction(model.OrderCreated, "settlement", ""))
	assert.Equal(t, ActionMarkPaid, SettleAction(model.OrderCreated, "capture", "accept"))
	assert.Equal(t, ActionMarkFailed, SettleAction(model.OrderCreated, "expire", ""))
	assert.Equal(t, ActionNone, SettleAction(model.OrderCreated, "pending", ""))
}

// Notifikasi yang sama diterapkan dua kali harus berakhir di state yang sama:
// begitu order terminal, aksi selalu nol — apa pun isi notifikasinya.
func TestSettleAction_ReplayOnTerminalOrderIsNoOp(t *testing.T) {
	status := model.OrderCreated

	first := SettleAction(status, "settlement", "")
	assert.Equal(t, ActionMarkPaid, first)
	status = model.OrderPaid

	second := SettleAction(status, "settlement", "")
	assert.Equal(t, ActionNone, second)

	for _, trx := range []string{"settlement", "deny", "cancel", "expire", "failure", "garbage"} {
		assert.Equal(t, ActionNone, SettleAction(model.OrderPaid, trx, ""), "trx=%s atas order paid", trx)
		assert.Equal(t, ActionNone, SettleAction(model.OrderFailed, trx, ""), "trx=%s atas order failed", trx)
	}
}

func TestNextPaymentStatus(t *testing.T) {
	assert.Equal(t, studentModel.PaymentPaid,
		NextPaymentStatus(studentModel.PaymentPending, ActionMarkPaid))
	assert.Equal(t, studentModel.PaymentFailed,
		NextPaymentStatus(studentModel.PaymentPending, ActionMarkFailed))
	assert.Equal(t, studentModel.PaymentPending,
		NextPaymentStatus(studentModel.PaymentPending, ActionNone))
}

// Notifikasi failed yang datang terlambat (order lain, retry gateway)
// tidak boleh menurunkan applicant yang sudah paid.
func TestNextPaymentStatus_PaidNeverDowngraded(t *testing.T) {
	assert.Equal(t, studentModel.PaymentPaid,
		NextPaymentStatus(studentModel.PaymentPaid, ActionMarkFailed))
	assert.Equal(t, studentModel.PaymentPaid,
		NextPaymentStatus(studentModel.PaymentPaid, ActionNone))
	assert.Equal(t, studentModel.PaymentPaid,
		NextPaymentStatus(studentModel.PaymentPaid, ActionMarkPaid))
}
