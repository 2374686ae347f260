package residents

import "errors"

var (
	ErrResidentNotFound = errors.New("resident not found")
	ErrNameRequired     = errors.New("name is required")
	ErrPhoneRequired    = errors.New("phone is required")
)
