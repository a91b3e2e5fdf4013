package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrUserNotFound = errors.New("user not found")

	ErrDuplicateSlot = errors.New("a confirmed booking already holds this slot")
)
