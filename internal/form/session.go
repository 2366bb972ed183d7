package form

import (
	"context"
	"fmt"
)

// Sender delivers a valid draft and returns the confirmation message.
// *Submitter is the production implementation.
type Sender interface {
	Submit(ctx context.Context, d Draft) (string, error)
}

// Session ties a State to a Sender so callers can submit in one call.
type Session struct {
	State  *State
	Sender Sender
}

// NewSession pairs st with snd.
func NewSession(st *State, snd Sender) *Session {
	return &Session{State: st, Sender: snd}
}

// Submit validates, sends, and records the outcome.  The returned error is
// a ValidationError, ErrInFlight, or the Sender's failure; the submitting
// flag is cleared before Submit returns in every case.
func (s *Session) Submit(ctx context.Context) (Snapshot, error) {
	d, err := s.State.BeginSubmit()
	if err != nil {
		return s.State.Snapshot(), err
	}

	var (
		msg     string
		sendErr error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				sendErr = &SubmissionError{Message: MsgSubmitFailed, Err: fmt.Errorf("sender panic: %v", r)}
			}
			s.State.Complete(msg, sendErr)
		}()
		msg, sendErr = s.Sender.Submit(ctx, d)
	}()

	return s.State.Snapshot(), sendErr
}
