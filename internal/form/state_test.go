package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestState_ShortNameDisablesSubmit(t *testing.T) {
	s := NewState(DefaultCatalog())
	s.SetFullName("Al")
	s.SetSize(SizeMedium)

	snap := s.Snapshot()
	if snap.Errors[FieldFullName] != MsgFullNameTooShort {
		t.Fatalf("fullName error = %q", snap.Errors[FieldFullName])
	}
	if snap.CanSubmit {
		t.Fatal("submit enabled for invalid draft")
	}
	if snap.Phase != PhaseInvalid {
		t.Fatalf("phase = %v, want invalid", snap.Phase)
	}

	_, err := s.BeginSubmit()
	if !IsValidationError(err) || !errors.Is(err, ErrNotValid) {
		t.Fatalf("BeginSubmit err = %v, want validation error", err)
	}
	if s.Snapshot().Submitting {
		t.Fatal("submitting set after rejected submit")
	}
}

func TestState_OnChangeShowsOnlyTouchedFields(t *testing.T) {
	s := NewState(DefaultCatalog())
	s.SetFullName("Alice")

	snap := s.Snapshot()
	if !snap.Errors.Empty() {
		t.Fatalf("untouched size should not show errors: %v", snap.Errors)
	}
	if snap.Phase != PhaseInvalid {
		t.Fatalf("phase = %v, want invalid while size unset", snap.Phase)
	}
	if snap.CanSubmit {
		t.Fatal("submit enabled without a size")
	}

	s.SetSize(SizeLarge)
	snap = s.Snapshot()
	if snap.Phase != PhaseValid || !snap.CanSubmit {
		t.Fatalf("phase = %v canSubmit = %v, want valid and enabled", snap.Phase, snap.CanSubmit)
	}
}

func TestState_OnSubmitDefersValidation(t *testing.T) {
	s := NewState(DefaultCatalog(), WithValidationMode(ValidateOnSubmit))
	s.SetFullName("Al")
	s.SetSize(SizeMedium)

	if snap := s.Snapshot(); !snap.Errors.Empty() || snap.Phase != PhaseEditing {
		t.Fatalf("edit validated early: phase %v errors %v", snap.Phase, snap.Errors)
	}
	if s.Validate() {
		t.Fatal("Validate accepted a two-letter name")
	}
	want := Errors{FieldFullName: MsgFullNameTooShort}
	if diff := cmp.Diff(want, s.Snapshot().Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	// Editing the field clears its stale message.
	s.SetFullName("Alice")
	if snap := s.Snapshot(); !snap.Errors.Empty() || !snap.CanSubmit {
		t.Fatalf("stale error kept: %v", snap.Errors)
	}
}

func TestState_ToggleTopping(t *testing.T) {
	s := NewState(DefaultCatalog())

	if err := s.ToggleTopping("3"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.ToggleTopping("1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := s.Snapshot().Draft.Toppings; !cmp.Equal(got, []string{"3", "1"}) {
		t.Fatalf("toppings = %v", got)
	}

	if err := s.ToggleTopping("3"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := s.Snapshot().Draft.Toppings; !cmp.Equal(got, []string{"1"}) {
		t.Fatalf("toppings after untoggle = %v", got)
	}

	if err := s.ToggleTopping("99"); !errors.Is(err, ErrUnknownTopping) {
		t.Fatalf("unknown topping err = %v", err)
	}
	if got := s.Snapshot().Draft.Toppings; !cmp.Equal(got, []string{"1"}) {
		t.Fatalf("unknown topping changed draft: %v", got)
	}
}

func TestState_SubmitLifecycle(t *testing.T) {
	s := NewState(DefaultCatalog())
	s.SetFullName("Alice")
	s.SetSize(SizeLarge)

	d, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if d.FullName != "Alice" || d.Size != SizeLarge {
		t.Fatalf("draft copy = %+v", d)
	}

	snap := s.Snapshot()
	if !snap.Submitting || snap.Phase != PhaseSubmitting || snap.CanSubmit {
		t.Fatalf("in-flight snapshot = %+v", snap)
	}
	if _, err := s.BeginSubmit(); !errors.Is(err, ErrInFlight) {
		t.Fatalf("second BeginSubmit err = %v, want ErrInFlight", err)
	}

	s.Complete("done", nil)
	snap = s.Snapshot()
	if snap.Submitting || snap.Phase != PhaseSuccess {
		t.Fatalf("after success = %+v", snap)
	}
	if !snap.Draft.Empty() {
		t.Fatalf("draft not reset: %+v", snap.Draft)
	}
	if snap.Result != (Result{Success: "done"}) {
		t.Fatalf("result = %+v", snap.Result)
	}

	s.SetFullName("Bob")
	if got := s.Snapshot().Phase; got == PhaseSuccess || got == PhaseSubmitting {
		t.Fatalf("edit after success left phase %v", got)
	}
}

func TestState_FailurePolicies(t *testing.T) {
	failure := &SubmissionError{Status: 500, Message: "Oven on fire"}

	tests := []struct {
		name      string
		policy    FailurePolicy
		wantEmpty bool
	}{
		{"retain", RetainDraft, false},
		{"clear", ClearDraft, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(DefaultCatalog(), WithFailurePolicy(tt.policy))
			s.SetFullName("Alice")
			s.SetSize(SizeSmall)
			if _, err := s.BeginSubmit(); err != nil {
				t.Fatalf("BeginSubmit: %v", err)
			}

			s.Complete("", failure)
			snap := s.Snapshot()
			if snap.Submitting {
				t.Fatal("submitting not cleared")
			}
			if snap.Phase != PhaseFailure {
				t.Fatalf("phase = %v", snap.Phase)
			}
			if snap.Result != (Result{Failure: "Oven on fire"}) {
				t.Fatalf("result = %+v", snap.Result)
			}
			if snap.Draft.Empty() != tt.wantEmpty {
				t.Fatalf("draft = %+v, want empty %v", snap.Draft, tt.wantEmpty)
			}
		})
	}
}

func TestParseModes(t *testing.T) {
	if m, err := ParseValidationMode("submit"); err != nil || m != ValidateOnSubmit {
		t.Fatalf("ParseValidationMode(submit) = %v, %v", m, err)
	}
	if _, err := ParseValidationMode("blur"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if p, err := ParseFailurePolicy("CLEAR"); err != nil || p != ClearDraft {
		t.Fatalf("ParseFailurePolicy(CLEAR) = %v, %v", p, err)
	}
	if p, err := ParseFailurePolicy(""); err != nil || p != RetainDraft {
		t.Fatalf("ParseFailurePolicy(\"\") = %v, %v", p, err)
	}
}

func TestState_Reset(t *testing.T) {
	s := NewState(DefaultCatalog())
	s.SetFullName("Alice")
	s.SetSize(SizeLarge)
	if err := s.ToggleTopping("1"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if s.Reset() {
		t.Fatal("Reset allowed while submitting")
	}
	if s.Snapshot().Draft.Name() != "Alice" {
		t.Fatal("draft changed by refused Reset")
	}

	s.Complete("", &SubmissionError{Message: "Kitchen closed"})
	if !s.Reset() {
		t.Fatal("Reset refused after completion")
	}
	snap := s.Snapshot()
	if !snap.Draft.Empty() || !snap.Errors.Empty() || snap.Result != (Result{}) {
		t.Fatalf("after Reset = %+v", snap)
	}
	if snap.Phase != PhaseEditing || snap.CanSubmit {
		t.Fatalf("phase %v, canSubmit %v after Reset", snap.Phase, snap.CanSubmit)
	}
}
