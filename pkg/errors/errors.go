package errors

import (
	"fmt"
	"net/http"
)

// Error codes form the booking taxonomy: clients branch on the code,
// never on the message text.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeMalformedInput    = "MALFORMED_INPUT"
	CodeMalformedSchedule = "MALFORMED_SCHEDULE"
	CodeUnknownRoom       = "UNKNOWN_ROOM"
	CodeCapacityExceeded  = "CAPACITY_EXCEEDED"
	CodeSlotConflict      = "SLOT_CONFLICT"
	CodeNoPendingRequest  = "NO_PENDING_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func MalformedInput(message string) *AppError {
	return &AppError{
		Code:       CodeMalformedInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func MalformedSchedule(message string) *AppError {
	return &AppError{
		Code:       CodeMalformedSchedule,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func UnknownRoom(name string) *AppError {
	return &AppError{
		Code:       CodeUnknownRoom,
		Message:    fmt.Sprintf("unknown room: %s", name),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"room_name": name,
		},
	}
}

func CapacityExceeded(room string, requested, max int) *AppError {
	return &AppError{
		Code:       CodeCapacityExceeded,
		Message:    fmt.Sprintf("room %s has a maximum capacity of %d, requested %d", room, max, requested),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"room_name":          room,
			"requested_capacity": requested,
			"max_capacity":       max,
		},
	}
}

func SlotConflict(room string) *AppError {
	return &AppError{
		Code:       CodeSlotConflict,
		Message:    fmt.Sprintf("room %s is occupied during the specified time period", room),
		HTTPStatus: http.StatusConflict,
	}
}

func NoPendingRequest() *AppError {
	return &AppError{
		Code:       CodeNoPendingRequest,
		Message:    "no booking request is awaiting review",
		HTTPStatus: http.StatusConflict,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
