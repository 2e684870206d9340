package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
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

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

var validate = validator.New()

func newOrderID() string {
	return "WYF-" + uuid.NewString()
}

func loadCoupon(db *gorm.DB, code string) (*model.CouponModel, error) {
	var cp model.CouponModel
	err := db.Where("coupon_code = ?", code).Take(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

/* ======================== COUPON PREVIEW ======================== */

// POST /api/u/payments/apply-coupon — preview saja, tidak menyimpan apa pun.
func (h *PaymentController) ApplyCoupon(c *fiber.Ctx) error {
	if _, err := helper.GetSubjectUID(c); err != nil {
		return err
	}

	var req dto.ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	cp, err := loadCoupon(h.DB, req.CouponCode)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	res := service.ComputeCoupon(configs.ProgramFeePaise, cp, time.Now())

	return helper.JsonOK(c, "OK", dto.CouponPreviewResponse{
		Valid:       res.Valid,
		CouponCode:  req.CouponCode,
		BaseAmount:  configs.ProgramFeePaise,
		Discount:    res.Discount,
		FinalAmount: res.FinalAmount,
	})
}

/* ======================== CREATE ORDER ======================== */

// POST /api/u/payments/create-order — hanya shortlisted & belum paid; satu
// order terbuka per subject (order kedua selagi masih "created" → 409).
func (h *PaymentController) CreateOrder(c *fiber.Ctx) error {
	uid, err := helper.GetSubjectUID(c)
	if err != nil {
		return err
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	unlock := lock.Default.Lock(uid)
	defer unlock()

	// guard dievaluasi dulu di luar transaksi supaya call ke gateway tidak
	// menyandera koneksi pool; di dalam transaksi dicek ulang sebelum commit.
	st, gerr := h.guardOrderCreation(h.DB, uid, false)
	if gerr != nil {
		return mapTxErr(c, gerr)
	}

	base := configs.ProgramFeePaise
	var cp *model.CouponModel
	if req.CouponCode != nil && *req.CouponCode != "" {
		cp, err = loadCoupon(h.DB, *req.CouponCode)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}
	res := service.ComputeCoupon(base, cp, time.Now())

	order := model.PaymentOrderModel{
		PaymentOrderID:        newOrderID(),
		PaymentStudentUID:     uid,
		PaymentAmount:         base,
		PaymentDiscountAmount: res.Discount,
		PaymentFinalAmount:    res.FinalAmount,
		PaymentStatus:         model.OrderCreated,
	}
	if res.Valid {
		order.PaymentCouponCode = &res.Code
	}

	if service.RequiresGateway(res.FinalAmount) {
		phone := ""
		if st.StudentPhone != nil {
			phone = *st.StudentPhone
		}
		token, redirectURL, err := snapGenerate(&order, service.CustomerInput{
			FullName: st.StudentFullName,
			Email:    st.StudentEmail,
			Phone:    phone,
		})
		if err != nil {
			log.Println("[ERROR] Gagal membuat transaksi Snap:", err)
			return fiber.NewError(fiber.StatusBadGateway, "Gateway pembayaran tidak tersedia")
		}
		order.PaymentSnapToken = &token
		order.PaymentRedirectURL = &redirectURL
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		st2, gerr := h.guardOrderCreation(tx, uid, true)
		if gerr != nil {
			return gerr
		}

		if err := tx.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		// kupon full-discount: tidak ada yang perlu ditagih — order langsung
		// settled tanpa menunggu webhook
		if !service.RequiresGateway(order.PaymentFinalAmount) {
			return h.settlePaid(tx, &order, "")
		}

		st2.StudentPaymentStatus = studentModel.PaymentPending
		if err := tx.Save(st2).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return nil
	})
	if txErr != nil {
		return mapTxErr(c, txErr)
	}

	return helper.JsonCreated(c, "Order dibuat", dto.FromPaymentOrderModel(&order))
}

// guardOrderCreation memvalidasi state applicant untuk create-order. Dipakai
// dua kali: pre-check tanpa lock, lalu ulang dengan FOR UPDATE di dalam tx.
func (h *PaymentController) guardOrderCreation(db *gorm.DB, uid string, forUpdate bool) (*studentModel.StudentModel, error) {
	q := db
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var st studentModel.StudentModel
	if err := q.Where("student_uid = ?", uid).Take(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if st.StudentStatus != studentModel.StatusShortlisted {
		return nil, &studentService.InvalidTransitionError{
			From:   st.StudentStatus,
			To:     studentModel.StatusActive,
			Reason: "payment hanya untuk shortlisted",
		}
	}
	if st.StudentPaymentStatus == studentModel.PaymentPaid {
		return nil, fiber.NewError(fiber.StatusConflict, "Pembayaran sudah lunas")
	}

	var open int64
	if err := db.Model(&model.PaymentOrderModel{}).
		Where("payment_student_uid = ? AND payment_status = ?", uid, model.OrderCreated).
		Count(&open).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if open > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Masih ada order yang belum selesai")
	}
	return &st, nil
}

/* ======================== HISTORY ======================== */

// GET /api/u/payments/history
func (h *PaymentController) History(c *fiber.Ctx) error {
	uid, err := helper.GetSubjectUID(c)
	if err != nil {
		return err
	}

	var rows []model.PaymentOrderModel
	err = helper.WithReadRetry(3, func() error {
		return h.DB.Where("payment_student_uid = ?", uid).
			Order("payment_created_at DESC").
			Find(&rows).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromPaymentOrderModels(rows))
}

/* ======================== HELPERS ======================== */

func mapTxErr(c *fiber.Ctx, txErr error) error {
	if fe, ok := txErr.(*fiber.Error); ok {
		return fe
	}
	var ite *studentService.InvalidTransitionError
	if errors.As(txErr, &ite) {
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity,
			"INVALID_TRANSITION", ite.Error(), fiber.Map{
				"current_status":   ite.From,
				"requested_status": ite.To,
			})
	}
	if errors.Is(txErr, studentService.ErrForbidden) {
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
	}
	return fiber.NewError(fiber.StatusInternalServerError, txErr.Error())
}

// indirection supaya test bisa stub Snap tanpa network
var snapGenerate = service.GenerateSnapToken
