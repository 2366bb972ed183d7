// internal/form/state.go
//
// Pizza – Forms subsystem: form state holder.
//
// Context
//   State owns the draft, the visible error map, the submitting flag, and the
//   latest result message.  It moves through these phases:
//
//      Editing → Validating → (Valid | Invalid) → Submitting →
//      (Success | Failure) → Editing
//
//   Any field edit re-enters Editing.  In ValidateOnChange mode the edit also
//   runs a validation pass; only fields the user has touched show messages,
//   while the phase reflects the whole draft.  In ValidateOnSubmit mode an
//   edit clears the stale message of the edited field and nothing more.
//
//   BeginSubmit proceeds only from Valid.  Complete always clears the
//   submitting flag, on success and on failure alike.
//
// Concurrency
//   All methods lock one mutex, so a UI loop and a submit goroutine may share
//   a State.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"strings"
	"sync"
)

// Phase is the state-machine position.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseValidating
	PhaseValid
	PhaseInvalid
	PhaseSubmitting
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseValidating:
		return "validating"
	case PhaseValid:
		return "valid"
	case PhaseInvalid:
		return "invalid"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ValidationMode selects when validation runs.
type ValidationMode int

const (
	ValidateOnChange ValidationMode = iota
	ValidateOnSubmit
)

// ParseValidationMode accepts "change" or "submit".
func ParseValidationMode(s string) (ValidationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "change":
		return ValidateOnChange, nil
	case "submit":
		return ValidateOnSubmit, nil
	default:
		return 0, fmt.Errorf("unknown validation mode %q", s)
	}
}

// FailurePolicy decides what happens to the draft after a failed submit.
type FailurePolicy int

const (
	RetainDraft FailurePolicy = iota
	ClearDraft
)

// ParseFailurePolicy accepts "retain" or "clear".
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "retain":
		return RetainDraft, nil
	case "clear":
		return ClearDraft, nil
	default:
		return 0, fmt.Errorf("unknown failure policy %q", s)
	}
}

// Result is the latest submission outcome.  At most one field is set.
type Result struct {
	Success string
	Failure string
}

// Snapshot is a read-only copy of State for rendering.
type Snapshot struct {
	Phase      Phase
	Draft      Draft
	Errors     Errors
	Submitting bool
	Result     Result
	CanSubmit  bool
}

// State is the form state holder.
type State struct {
	mu sync.Mutex

	catalog   *Catalog
	validator *Validator
	mode      ValidationMode
	policy    FailurePolicy

	phase      Phase
	draft      Draft
	errors     Errors
	touched    map[string]bool
	submitting bool
	result     Result
}

// Option configures a State.
type Option func(*State)

// WithValidationMode sets when validation runs.  Default ValidateOnChange.
func WithValidationMode(m ValidationMode) Option { return func(s *State) { s.mode = m } }

// WithFailurePolicy sets the draft recovery policy.  Default RetainDraft.
func WithFailurePolicy(p FailurePolicy) Option { return func(s *State) { s.policy = p } }

// WithValidator replaces the default Validator.
func WithValidator(v *Validator) Option { return func(s *State) { s.validator = v } }

// NewState returns an empty form in the Editing phase.
func NewState(catalog *Catalog, opts ...Option) *State {
	s := &State{
		catalog: catalog,
		phase:   PhaseEditing,
		errors:  Errors{},
		touched: make(map[string]bool),
	}
	for _, o := range opts {
		o(s)
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}
	return s
}

// -----------------------------------------------------------------------------
// Field edits
// -----------------------------------------------------------------------------

// SetFullName replaces the full name.
func (s *State) SetFullName(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.FullName = v
	s.editedLocked(FieldFullName)
}

// SetSize replaces the size.  Values outside S, M, and L are kept so the
// validator can report them.
func (s *State) SetSize(v Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Size = v
	s.editedLocked(FieldSize)
}

// ToggleTopping selects or deselects a catalog topping.
func (s *State) ToggleTopping(id string) error {
	if !s.catalog.Contains(id) {
		return fmt.Errorf("%w %q", ErrUnknownTopping, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.toggle(id)
	s.editedLocked(FieldToppings)
	return nil
}

func (s *State) editedLocked(field string) {
	s.phase = PhaseEditing
	s.touched[field] = true
	if s.mode == ValidateOnSubmit {
		delete(s.errors, field)
		return
	}
	s.validateLocked()
}

// -----------------------------------------------------------------------------
// Validation and submission
// -----------------------------------------------------------------------------

// Validate runs one validation pass over every field and reports whether
// the draft is valid.
func (s *State) Validate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchAllLocked()
	s.validateLocked()
	return s.phase == PhaseValid
}

func (s *State) touchAllLocked() {
	for _, f := range []string{FieldFullName, FieldSize, FieldToppings} {
		s.touched[f] = true
	}
}

func (s *State) validateLocked() {
	s.phase = PhaseValidating
	errs := s.validator.Validate(s.draft)

	visible := Errors{}
	for f, msg := range errs {
		if f == "" || s.touched[f] {
			visible[f] = msg
		}
	}
	s.errors = visible

	if errs.Empty() {
		s.phase = PhaseValid
		return
	}
	s.phase = PhaseInvalid
}

// CanSubmit reports whether the submit action is enabled: nothing in flight,
// name and size filled in, and no visible errors.
func (s *State) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSubmitLocked()
}

func (s *State) canSubmitLocked() bool {
	return !s.submitting &&
		s.draft.FullName != "" &&
		s.draft.Size != SizeUnset &&
		s.errors.Empty()
}

// BeginSubmit validates the draft and, when valid, enters Submitting and
// returns a copy of the draft to send.  It returns ErrInFlight while another
// submission runs and a ValidationError when the draft is invalid.
func (s *State) BeginSubmit() (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return Draft{}, ErrInFlight
	}
	s.touchAllLocked()
	s.validateLocked()
	if s.phase != PhaseValid {
		return Draft{}, ValidationError{Fields: s.errors.Clone()}
	}

	s.submitting = true
	s.phase = PhaseSubmitting
	s.result = Result{}
	return s.draft.Clone(), nil
}

// Complete records the outcome of the submission started by BeginSubmit.
// A nil err means success: the draft resets and confirmation is surfaced.
// Otherwise the failure policy decides whether the draft survives.
func (s *State) Complete(confirmation string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitting = false
	if err == nil {
		s.resetLocked()
		s.result = Result{Success: confirmation}
		s.phase = PhaseSuccess
		return
	}

	if s.policy == ClearDraft {
		s.resetLocked()
	}
	s.result = Result{Failure: failureMessage(err)}
	s.phase = PhaseFailure
}

// Reset empties the draft, errors, and last result.  It does nothing and
// reports false while a submission is in flight.
func (s *State) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.resetLocked()
	s.result = Result{}
	s.phase = PhaseEditing
	return true
}

func (s *State) resetLocked() {
	s.draft = Draft{}
	s.errors = Errors{}
	s.touched = make(map[string]bool)
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Phase:      s.phase,
		Draft:      s.draft.Clone(),
		Errors:     s.errors.Clone(),
		Submitting: s.submitting,
		Result:     s.result,
		CanSubmit:  s.canSubmitLocked(),
	}
}

// Catalog returns the topping catalog the state was built with.
func (s *State) Catalog() *Catalog { return s.catalog }
