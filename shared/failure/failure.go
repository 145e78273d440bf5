package failure

import (
	"errors"
	"net/http"
)

const (
	KindValidation      = "Validation"
	KindMissingField    = "MissingField"
	KindInvalidFormat   = "InvalidFormat"
	KindInvalidValue    = "InvalidValue"
	KindUnknownRoomType = "UnknownRoomType"
	KindDuplicate       = "DuplicateIdentity"
	KindNotFound        = "NotFound"
	KindStorageFailure  = "StorageFailure"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Kind names the domain error kind, Details carries structured data such as the
// offending fields of a validation failure.
type Failure struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Validation returns a bad request Failure carrying every offending field in details.
func Validation(msg string, details any) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
		Details: details,
	}
}

// Duplicate returns a bad request Failure for a natural key that is already taken.
func Duplicate(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindDuplicate,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error. The client sees
// msg only; err stays reachable through errors.Unwrap.
func InternalError(msg string, err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: msg,
			cause:   err,
		}
	}

	return nil
}

// StorageFailure hides a storage error behind a generic message. The cause stays
// reachable through errors.Unwrap for logging.
func StorageFailure(msg string, err error) error {
	return &Failure{
		Code:    http.StatusInternalServerError,
		Kind:    KindStorageFailure,
		Message: msg,
		cause:   err,
	}
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind of an error interface, empty when it carries none.
func GetKind(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// GetDetails returns the structured details of an error interface.
func GetDetails(err error) any {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Details
	}

	return nil
}
