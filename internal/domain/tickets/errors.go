package tickets

import "errors"

var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrInvalidStatus       = errors.New("invalid ticket status")
	ErrDescriptionRequired = errors.New("description is required")
)
