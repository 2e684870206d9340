package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wyffle_backend/internals/configs"
	dto "wyffle_backend/internals/features/payments/dto"
	model "wyffle_backend/internals/features/payments/model"
	service "wyffle_backend/internals/features/payments/service"
	studentModel "wyffle_backend/internals/features/students/model"
	studentService "wyffle_backend/internals/features/students/service"
	helper "wyffle_backend/internals/helpers"
	"wyffle_backend/internals/helpers/lock"
)

// POST /api/payments/verify — notifikasi server-to-server dari gateway.
// Tanpa auth user; identitas dibuktikan lewat signature. Idempotent:
// notifikasi ulang untuk order yang sudah terminal dijawab 200 tanpa efek.
func (h *PaymentController) Verify(c *fiber.Ctx) error {
	var n dto.GatewayNotification
	if err := c.BodyParser(&n); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(n); err != nil {
		return helper.JsonValidationError(c, err)
	}

	log.Println("📄 Order ID:", n.OrderID)
	log.Println("📌 Transaction Status:", n.TransactionStatus)

	var order model.PaymentOrderModel
	if err := h.DB.Where("payment_order_id = ?", n.OrderID).Take(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Order tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	unlock := lock.Default.Lock(order.PaymentStudentUID)
	defer unlock()

	badSignature := false
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		// re-read di dalam lock; notifikasi paralel bisa sudah menang
		var o model.PaymentOrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_order_id = ?", n.OrderID).
			Take(&o).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		action := service.SettleAction(o.PaymentStatus, n.TransactionStatus, n.FraudStatus)
		if o.IsTerminal() {
			// replay: aksi untuk order terminal selalu nol, signature tidak dicek
			return nil
		}

		// signature dihitung ulang dari final amount TERSIMPAN, bukan
		// gross_amount di payload. Gagal = order+payment_status failed
		// (tetap di-commit), recoverable — applicant boleh create-order lagi.
		if !service.VerifySignature(n.SignatureKey, n.OrderID, n.StatusCode,
			o.PaymentFinalAmount, configs.MidtransServerKey) {
			log.Println("[AUDIT] Signature webhook tidak cocok untuk order", n.OrderID)
			badSignature = true
			return h.settleFailed(tx, &o, n.TransactionID)
		}

		switch action {
		case service.ActionMarkPaid:
			return h.settlePaid(tx, &o, n.TransactionID)
		case service.ActionMarkFailed:
			return h.settleFailed(tx, &o, n.TransactionID)
		default:
			log.Println("[INFO] Status tidak diproses:", n.TransactionStatus)
			return nil
		}
	})
	if txErr != nil {
		return mapTxErr(c, txErr)
	}
	if badSignature {
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity,
			"PAYMENT_VERIFICATION_FAILED", "Signature tidak valid", nil)
	}

	return helper.JsonOK(c, "OK", fiber.Map{"order_id": n.OrderID})
}

func (h *PaymentController) settlePaid(tx *gorm.DB, o *model.PaymentOrderModel, trxID string) error {
	now := time.Now()
	o.PaymentStatus = model.OrderPaid
	if trxID != "" {
		o.PaymentTransactionID = &trxID
	}
	o.PaymentPaidAt = &now
	if err := tx.Save(o).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var st studentModel.StudentModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_uid = ?", o.PaymentStudentUID).
		Take(&st).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	st.StudentPaymentStatus = service.NextPaymentStatus(st.StudentPaymentStatus, service.ActionMarkPaid)
	steps, err := st.Steps()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	steps.PaymentProcessed = true
	if err := st.SetSteps(steps); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// aktivasi hanya kalau masih shortlisted; kalau admin keburu menolak,
	// uang tercatat tapi status tidak pernah mundur lewat jalur ini
	verr := studentService.ValidateTransition(studentService.TransitionRequest{
		From:          st.StudentStatus,
		To:            studentModel.StatusActive,
		PaymentStatus: st.StudentPaymentStatus,
		Steps:         steps,
		Actor:         studentService.ActorReconciler,
	})
	if verr == nil {
		st.StudentStatus = studentModel.StatusActive
	} else {
		log.Printf("[AUDIT] Order %s lunas tapi student %s tidak bisa diaktifkan (status %s): %v",
			o.PaymentOrderID, st.StudentUID, st.StudentStatus, verr)
	}

	if err := tx.Save(&st).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return nil
}

func (h *PaymentController) settleFailed(tx *gorm.DB, o *model.PaymentOrderModel, trxID string) error {
	o.PaymentStatus = model.OrderFailed
	o.PaymentTransactionID = &trxID
	if err := tx.Save(o).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var st studentModel.StudentModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_uid = ?", o.PaymentStudentUID).
		Take(&st).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	// jangan timpa "paid" dari order lain
	if next := service.NextPaymentStatus(st.StudentPaymentStatus, service.ActionMarkFailed); next != st.StudentPaymentStatus {
		st.StudentPaymentStatus = next
		if err := tx.Save(&st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}
	return nil
}
