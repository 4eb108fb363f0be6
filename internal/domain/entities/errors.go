package entities

import (
	"errors"
	"fmt"
)

// Validation errors. Setters return these and leave the receiver unchanged.
var (
	ErrInvalidAge      = errors.New("age must be between 0 and 120")
	ErrInvalidTickets  = errors.New("tickets must not be negative")
	ErrInvalidMaxRider = errors.New("max rider must be at least 1")
	ErrBlankName       = errors.New("name must not be blank")
	ErrBlankMembership = errors.New("membership level must not be blank")
	ErrNilVisitor      = errors.New("visitor must not be nil")
	ErrNilComparator   = errors.New("comparator must not be nil")
	ErrHistoryEmpty    = errors.New("ride history is empty")
)

// Operational errors. They reach the caller wrapped in an *OperationError.
var (
	ErrNoOperator      = errors.New("no operator assigned")
	ErrQueueEmpty      = errors.New("no visitors in queue")
	ErrFileOperation   = errors.New("file operation failed")
	ErrMalformedRecord = errors.New("malformed visitor record")
)

// OperationError reports a failed ride operation. Err is the error kind (one
// of the operational sentinels above) and Cause, when set, is the underlying
// reason. errors.Is matches against both.
//
// Go Learning Note: Multi-error Unwrap:
// Since Go 1.20 an error may implement Unwrap() []error. errors.Is and
// errors.As then walk every branch, so a caller can test for the kind
// (errors.Is(err, ErrNoOperator)) or the root cause (errors.Is(err,
// fs.ErrNotExist)) on the same value.
type OperationError struct {
	Op    string
	Ride  string
	Msg   string
	Err   error
	Cause error
}

func (e *OperationError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Err.Error()
	}
	if e.Ride != "" {
		msg = fmt.Sprintf("%s ride '%s': %s", e.Op, e.Ride, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *OperationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
