package fees

import "errors"

var (
	ErrFeeNotFound   = errors.New("fee not found")
	ErrInvalidStatus = errors.New("invalid payment status")
	ErrInvalidAmount = errors.New("amount must be positive")
)
