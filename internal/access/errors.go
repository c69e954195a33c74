package access

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrConflict      = errors.New("profile already exists")
)

// FailReason identifies the terminal Failed state of a join attempt.
type FailReason string

const (
	ReasonMissingCode      FailReason = "missing_code"
	ReasonMissingEmail     FailReason = "missing_email"
	ReasonInvalidEmail     FailReason = "invalid_email"
	ReasonEventNotFound    FailReason = "event_not_found"
	ReasonProfileCreate    FailReason = "profile_create_error"
	ReasonStoreUnavailable FailReason = "store_unavailable"
)

// JoinError is the only error type a join attempt surfaces to callers;
// every failure inside the flow is caught and converted. Message is safe
// to show to the participant.
type JoinError struct {
	Reason  FailReason
	Message string
	Err     error
}

func (e *JoinError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("join failed (%s): %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("join failed (%s): %s", e.Reason, e.Message)
}

func (e *JoinError) Unwrap() error { return e.Err }

func failure(reason FailReason, message string, err error) *JoinError {
	return &JoinError{Reason: reason, Message: message, Err: err}
}
