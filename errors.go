package totalconnect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrAuthentication is returned when the service rejects the credentials.
	// It is terminal: the client will not try to log in again on its own.
	ErrAuthentication = errors.New("authentication failed")

	// ErrConnectionExhausted is returned when a transient failure persisted
	// through every allowed attempt.
	ErrConnectionExhausted = errors.New("could not execute request: maximum attempts tried")
)

// BadResultCodeError is returned for result codes that are either
// unsupported by the panel or not known at all. These are never retried.
type BadResultCodeError struct {
	Operation string
	Code      ResultCode
	Data      string
}

func (e *BadResultCodeError) Error() string {
	msg := fmt.Sprintf("%s: bad result code %d (%s)", e.Operation, int(e.Code), e.Code)
	if e.Data != "" {
		msg += ": " + e.Data
	}
	return msg
}

// PartialResponseError is returned when the service reports success but
// the reply is missing data needed to update the model.
type PartialResponseError struct {
	Operation string
	Missing   []string
	Err       error
}

func (e *PartialResponseError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: partial response, missing %s", e.Operation, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: partial response: %v", e.Operation, e.Err)
}

func (e *PartialResponseError) Unwrap() error {
	return e.Err
}

// LookupError is returned when a location or zone is not part of the model.
type LookupError struct {
	Kind       string
	LocationID int
	ID         int
}

func (e *LookupError) Error() string {
	if e.Kind == "location" {
		return "location " + strconv.Itoa(e.ID) + " not found"
	}
	return fmt.Sprintf("%s %d not found in location %d", e.Kind, e.ID, e.LocationID)
}

// IsRetriable reports whether a higher level caller may try the whole
// operation again later: only exhausted transient failures qualify.
func IsRetriable(err error) bool {
	return errors.Is(err, ErrConnectionExhausted)
}

type retriableError struct {
	code ResultCode
	err  error
}

func (e *retriableError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.code.String()
}

func (e *retriableError) Unwrap() error {
	return e.err
}

type sessionInvalidError struct {
	operation string
}

func (e *sessionInvalidError) Error() string {
	return e.operation + ": " + ResultInvalidSession.String()
}

// outcomeError converts a non-success reply into the error the caller sees.
func outcomeError(operation string, res RawResult) error {
	switch res.Outcome() {
	case OutcomeSuccess:
		return nil
	case OutcomeRetriable:
		return &retriableError{code: res.ResultCode}
	case OutcomeSessionInvalid:
		return &sessionInvalidError{operation: operation}
	case OutcomeAuthenticationFailure:
		return fmt.Errorf("%s: %w: %s", operation, ErrAuthentication, res.ResultCode)
	default:
		return &BadResultCodeError{
			Operation: operation,
			Code:      res.ResultCode,
			Data:      res.ResultData,
		}
	}
}
