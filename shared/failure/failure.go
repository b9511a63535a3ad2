package failure

import (
	"errors"
)

// Code classifies a failure for the presentation layer.
type Code int

const (
	CodeInternal Code = iota
	CodeValidation
	CodeUnauthorized
	CodeNotFound
	CodeConflict
	CodeDataAccess
)

func (c Code) String() string {
	switch c {
	case CodeValidation:
		return "validation"
	case CodeUnauthorized:
		return "unauthorized"
	case CodeNotFound:
		return "not_found"
	case CodeConflict:
		return "conflict"
	case CodeDataAccess:
		return "data_access"
	default:
		return "internal"
	}
}

// Failure is a coded error whose message is safe to show to the operator.
type Failure struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

var (
	ErrNotLoggedIn     = &Failure{Code: CodeUnauthorized, Message: "not logged in"}
	ErrMissingLogin    = &Failure{Code: CodeValidation, Message: "Please enter username and password"}
	ErrInvalidLogin    = &Failure{Code: CodeUnauthorized, Message: "Invalid username or password"}
	ErrUnknownFormat   = &Failure{Code: CodeValidation, Message: "unsupported file format"}
	ErrInvalidAmount   = &Failure{Code: CodeValidation, Message: "Please enter a valid amount"}
	ErrRentalRequired  = &Failure{Code: CodeValidation, Message: "Please select a rental"}
	ErrVehicleRequired = &Failure{Code: CodeValidation, Message: "Please select a vehicle"}
)

func (e *Failure) Error() string {
	return e.Message
}

// Validation returns a validation failure with the given message.
func Validation(msg string) error {
	return &Failure{
		Code:    CodeValidation,
		Message: msg,
	}
}

// ValidationFromError returns a validation failure carrying the message of err.
func ValidationFromError(err error) error {
	if err != nil {
		return &Failure{
			Code:    CodeValidation,
			Message: err.Error(),
		}
	}

	return nil
}

func Unauthorized(msg string) error {
	return &Failure{
		Code:    CodeUnauthorized,
		Message: msg,
	}
}

// NotFound returns a failure for a missing entity.
func NotFound(msg string) error {
	return &Failure{
		Code:    CodeNotFound,
		Message: msg,
	}
}

func Conflict(msg string) error {
	return &Failure{
		Code:    CodeConflict,
		Message: msg,
	}
}

// DataAccess returns a failure for an unreachable store or a rejected statement.
func DataAccess(err error) error {
	if err != nil {
		return &Failure{
			Code:    CodeDataAccess,
			Message: err.Error(),
		}
	}

	return nil
}

func Internal(err error) error {
	if err != nil {
		return &Failure{
			Code:    CodeInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// GetCode returns the code of the first Failure in the chain of err.
func GetCode(err error) Code {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return CodeInternal
}

func IsCode(err error, code Code) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code == code
	}

	return false
}
