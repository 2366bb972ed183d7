package form

import (
	"errors"
	"fmt"
)

var (
	// ErrNotValid is matched by every ValidationError.
	ErrNotValid = errors.New("order draft is not valid")
	// ErrInFlight is returned when a submission is already running.
	ErrInFlight = errors.New("order submission already in flight")
	// ErrUnknownTopping is returned when toggling an id outside the catalog.
	ErrUnknownTopping = errors.New("unknown topping")
)

// ValidationError wraps per-field failures and satisfies the error
// interface, so callers can tell user input errors from system failures via
// errors.As or IsValidationError.
type ValidationError struct{ Fields Errors }

func (ve ValidationError) Error() string { return "form validation failed" }

// Is lets errors.Is(err, ErrNotValid) match.
func (ve ValidationError) Is(target error) bool { return target == ErrNotValid }

// IsValidationError reports whether err came from a failed validation pass.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// SubmissionError is a network or server failure.  Message is what the user
// sees; Status is zero when no HTTP response arrived.
type SubmissionError struct {
	Status  int
	Message string
	Err     error
}

func (se *SubmissionError) Error() string {
	switch {
	case se.Err != nil && se.Status != 0:
		return fmt.Sprintf("submit order: status %d: %v", se.Status, se.Err)
	case se.Err != nil:
		return fmt.Sprintf("submit order: %v", se.Err)
	default:
		return fmt.Sprintf("submit order: status %d: %s", se.Status, se.Message)
	}
}

func (se *SubmissionError) Unwrap() error { return se.Err }

// IsSubmissionError reports whether err is a *SubmissionError.
func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}

// failureMessage picks the user-facing text for a failed submission.
func failureMessage(err error) string {
	var se *SubmissionError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return MsgSubmitFailed
}
