package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "wyffle_backend/internals/features/students/model"
)

func TestAdminReviewTransitions(t *testing.T) {
	for _, to := range []string{model.StatusShortlisted, model.StatusRejected} {
		err := ValidateTransition(TransitionRequest{
			From: model.StatusPending, To: to, Actor: ActorAdmin,
		})
		assert.NoError(t, err, "admin pending → %s", to)
	}

	// non-admin tidak boleh review
	err := ValidateTransition(TransitionRequest{
		From: model.StatusPending, To: model.StatusShortlisted, Actor: ActorSelf,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestActivationOnlyByReconcilerAfterPaid(t *testing.T) {
	base := TransitionRequest{
		From: model.StatusShortlisted, To: model.StatusActive,
		PaymentStatus: model.PaymentPaid,
	}

	// reconciler + paid → ok
	req := base
	req.Actor = ActorReconciler
	assert.NoError(t, ValidateTransition(req))

	// applicant tidak bisa self-promote
	req = base
	req.Actor = ActorSelf
	assert.ErrorIs(t, ValidateTransition(req), ErrForbidden)

	// admin pun tidak lewat jalur transisi (aktivasi selalu hasil settlement)
	req = base
	req.Actor = ActorAdmin
	assert.ErrorIs(t, ValidateTransition(req), ErrForbidden)

	// reconciler tapi belum paid → invalid transition
	req = base
	req.Actor = ActorReconciler
	req.PaymentStatus = model.PaymentPending
	var ite *InvalidTransitionError
	require.ErrorAs(t, ValidateTransition(req), &ite)
	assert.Equal(t, model.StatusShortlisted, ite.From)
	assert.Equal(t, model.StatusActive, ite.To)
}

func TestCompletionRequiresFinalShowcase(t *testing.T) {
	req := TransitionRequest{
		From: model.StatusActive, To: model.StatusCompleted,
		Actor: ActorAdmin,
		Steps: model.ProgressSteps{FinalShowcase: true},
	}
	assert.NoError(t, ValidateTransition(req))

	req.Steps.FinalShowcase = false
	var ite *InvalidTransitionError
	require.ErrorAs(t, ValidateTransition(req), &ite)
	assert.Contains(t, ite.Error(), "final showcase")
}

func TestNoBackEdgesEver(t *testing.T) {
	// properti keras: rejected → active dan completed → pending mustahil
	// untuk actor manapun, payment status manapun.
	cases := []struct{ from, to string }{
		{model.StatusRejected, model.StatusActive},
		{model.StatusCompleted, model.StatusPending},
		{model.StatusActive, model.StatusPending},
		{model.StatusShortlisted, model.StatusPending},
		{model.StatusRejected, model.StatusShortlisted},
	}
	for _, tc := range cases {
		for _, actor := range []Actor{ActorSelf, ActorAdmin, ActorReconciler} {
			err := ValidateTransition(TransitionRequest{
				From: tc.from, To: tc.to, Actor: actor,
				PaymentStatus: model.PaymentPaid,
				Steps:         model.ProgressSteps{FinalShowcase: true},
			})
			var ite *InvalidTransitionError
			assert.ErrorAs(t, err, &ite, "%s → %s by %s must be invalid", tc.from, tc.to, actor)
		}
	}
}

func TestReachabilityFromPending(t *testing.T) {
	// node yang reachable dari pending: shortlisted, rejected, active, completed.
	// BFS atas allowedEdges — memastikan graph tidak diam-diam melebar.
	seen := map[string]bool{model.StatusPending: true}
	queue := []string{model.StatusPending}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range allowedEdges[cur] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	assert.Len(t, seen, 5)
	assert.True(t, seen[model.StatusCompleted])
	assert.True(t, seen[model.StatusRejected])
}

func TestUnknownAndNoopStatus(t *testing.T) {
	var ite *InvalidTransitionError
	err := ValidateTransition(TransitionRequest{From: model.StatusPending, To: "archived", Actor: ActorAdmin})
	require.ErrorAs(t, err, &ite)

	err = ValidateTransition(TransitionRequest{From: model.StatusActive, To: model.StatusActive, Actor: ActorAdmin})
	require.ErrorAs(t, err, &ite)
}

func TestStepClearRequiresAdmin(t *testing.T) {
	// true → false hanya admin
	assert.NoError(t, ValidateStepChange(model.StepInterviewCompleted, true, false, ActorAdmin))
	assert.ErrorIs(t, ValidateStepChange(model.StepInterviewCompleted, true, false, ActorSelf), ErrForbidden)
	assert.ErrorIs(t, ValidateStepChange(model.StepPaymentProcessed, true, false, ActorReconciler), ErrForbidden)
}

func TestStepAdvanceByActor(t *testing.T) {
	// admin bebas advance
	assert.NoError(t, ValidateStepChange(model.StepCertificateReady, false, true, ActorAdmin))

	// self hanya application_submitted
	assert.NoError(t, ValidateStepChange(model.StepApplicationSubmitted, false, true, ActorSelf))
	assert.ErrorIs(t, ValidateStepChange(model.StepInterviewCompleted, false, true, ActorSelf), ErrForbidden)
	assert.ErrorIs(t, ValidateStepChange(model.StepFinalShowcase, false, true, ActorSelf), ErrForbidden)

	// reconciler hanya payment_processed
	assert.NoError(t, ValidateStepChange(model.StepPaymentProcessed, false, true, ActorReconciler))
	assert.ErrorIs(t, ValidateStepChange(model.StepInternshipActive, false, true, ActorReconciler), ErrForbidden)
}

func TestStepNoopAndUnknown(t *testing.T) {
	// idempotent: nilai sama → nil, actor apapun
	assert.NoError(t, ValidateStepChange(model.StepFinalShowcase, true, true, ActorSelf))

	err := ValidateStepChange("graduation_party", false, true, ActorAdmin)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrForbidden))
}

func TestFindLifecycleKeys(t *testing.T) {
	payload := map[string]any{
		"student_full_name": "Asha",
		"status":            "active",
		"student_skills":    []string{"go"},
	}
	found := FindLifecycleKeys(payload)
	assert.Equal(t, []string{"status"}, found)

	clean := map[string]any{"student_full_name": "Asha"}
	assert.Empty(t, FindLifecycleKeys(clean))
}

func TestStepsRoundTrip(t *testing.T) {
	var m model.StudentModel
	steps, err := m.Steps()
	require.NoError(t, err)
	assert.False(t, steps.ApplicationSubmitted)

	steps.ApplicationSubmitted = true
	steps.PaymentProcessed = true
	require.NoError(t, m.SetSteps(steps))

	back, err := m.Steps()
	require.NoError(t, err)
	assert.True(t, back.ApplicationSubmitted)
	assert.True(t, back.PaymentProcessed)
	assert.False(t, back.FinalShowcase)
}
