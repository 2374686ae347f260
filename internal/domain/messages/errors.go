package messages

import "errors"

var (
	ErrEmptyMessage  = errors.New("message text is empty")
	ErrRoomRequired  = errors.New("room is required")
	ErrInvalidSender = errors.New("invalid sender")
)
