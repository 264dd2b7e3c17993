package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrCropNotFound = errors.New("crop not found")

	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNotPending   = errors.New("only pending orders can be approved")
	ErrInvalidOrder      = errors.New("invalid order payload")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrMessageNotFound     = errors.New("message not found")
	ErrMessagingNotAllowed = errors.New("messaging between these users is not allowed")

	ErrInvalidInput = errors.New("invalid input")
)
