// Lifecycle engine: guard murni atas graph status + progress steps.
// Tidak pegang state sendiri — semua keputusan fungsi dari record yang
// baru dibaca + request masuk. Controller memanggil ini di dalam
// lock per-subject, lalu commit lewat transaksi gorm.
package service

import (
	"errors"
	"fmt"

	model "wyffle_backend/internals/features/students/model"
)

/* =============== ACTOR =============== */

type Actor string

const (
	ActorSelf       Actor = "self"
	ActorAdmin      Actor = "admin"
	ActorReconciler Actor = "reconciler" // hanya settlement webhook
)

/* =============== TYPED ERRORS =============== */

// ErrForbidden: role/ownership tidak cukup untuk transisi yang diminta.
var ErrForbidden = errors.New("forbidden")

// InvalidTransitionError membawa state sekarang + yang diminta supaya
// client bisa menjelaskan kegagalan ke user.
type InvalidTransitionError struct {
	From   string
	To     string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid transition %s → %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid transition %s → %s", e.From, e.To)
}

/* =============== STATUS GRAPH =============== */

// pending → {shortlisted, rejected}, shortlisted → active, active → completed.
// Tidak ada back-edge: "rejected → active" / "completed → pending" mustahil
// lewat jalur manapun, termasuk admin.
var allowedEdges = map[string][]string{
	model.StatusPending:     {model.StatusShortlisted, model.StatusRejected},
	model.StatusShortlisted: {model.StatusActive},
	model.StatusActive:      {model.StatusCompleted},
}

func edgeAllowed(from, to string) bool {
	for _, t := range allowedEdges[from] {
		if t == to {
			return true
		}
	}
	return false
}

type TransitionRequest struct {
	From          string
	To            string
	PaymentStatus string
	Steps         model.ProgressSteps
	Actor         Actor
}

// ValidateTransition: nil kalau transisi boleh; *InvalidTransitionError
// kalau keluar graph / guard state gagal; ErrForbidden kalau actor salah.
func ValidateTransition(req TransitionRequest) error {
	if !model.IsValidStatus(req.To) {
		return &InvalidTransitionError{From: req.From, To: req.To, Reason: "unknown status"}
	}
	if req.From == req.To {
		return &InvalidTransitionError{From: req.From, To: req.To, Reason: "no-op transition"}
	}
	if !edgeAllowed(req.From, req.To) {
		return &InvalidTransitionError{From: req.From, To: req.To}
	}

	switch {
	case req.From == model.StatusPending:
		// shortlist / reject keputusan review — admin only
		if req.Actor != ActorAdmin {
			return ErrForbidden
		}

	case req.From == model.StatusShortlisted && req.To == model.StatusActive:
		// hanya reconciler (settlement), tidak bisa self-promote
		if req.Actor != ActorReconciler {
			return ErrForbidden
		}
		if req.PaymentStatus != model.PaymentPaid {
			return &InvalidTransitionError{From: req.From, To: req.To, Reason: "payment not settled"}
		}

	case req.From == model.StatusActive && req.To == model.StatusCompleted:
		if req.Actor != ActorAdmin {
			return ErrForbidden
		}
		if !req.Steps.FinalShowcase {
			return &InvalidTransitionError{From: req.From, To: req.To, Reason: "final showcase not done"}
		}
	}

	return nil
}

/* =============== PROGRESS STEP GUARDS =============== */

// Step yang boleh di-advance sendiri oleh applicant (aksi miliknya sendiri).
var selfAdvanceSteps = map[string]struct{}{
	model.StepApplicationSubmitted: {},
}

// Step yang di-set system/reconciler saat settlement.
var reconcilerSteps = map[string]struct{}{
	model.StepPaymentProcessed: {},
}

// ValidateStepChange: guard perubahan satu step checklist.
//   - clear true → false: admin only (override eksplisit)
//   - advance false → true: admin bebas; reconciler hanya payment_processed;
//     self hanya step miliknya sendiri
func ValidateStepChange(step string, current, next bool, actor Actor) error {
	if _, ok := (model.ProgressSteps{}).Get(step); !ok {
		return fmt.Errorf("unknown progress step %q", step)
	}
	if current == next {
		return nil // no-op, idempotent
	}

	if current && !next {
		if actor != ActorAdmin {
			return ErrForbidden
		}
		return nil
	}

	// advance false → true
	switch actor {
	case ActorAdmin:
		return nil
	case ActorReconciler:
		if _, ok := reconcilerSteps[step]; ok {
			return nil
		}
		return ErrForbidden
	case ActorSelf:
		if _, ok := selfAdvanceSteps[step]; ok {
			return nil
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}

/* =============== FORBIDDEN PROFILE KEYS =============== */

// Field lifecycle tidak boleh ikut payload update profile non-admin.
var lifecycleKeys = []string{
	"status", "student_status",
	"payment_status", "student_payment_status",
	"progress_percentage", "student_progress_percentage",
	"progress_steps", "student_progress_steps",
}

// FindLifecycleKeys: key terlarang yang muncul di payload profile.
func FindLifecycleKeys(payload map[string]any) []string {
	var found []string
	for _, k := range lifecycleKeys {
		if _, ok := payload[k]; ok {
			found = append(found, k)
		}
	}
	return found
}
