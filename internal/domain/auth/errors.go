package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPhoneNotFound      = errors.New("phone number not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSessionNotFound    = errors.New("session not found")
)

// Messages shown on the sign-in form.
const (
	InvalidCredentialsMessage = "Invalid admin credentials"
	PhoneNotFoundMessage      = "Phone number not found in directory. Please contact Admin."
)
