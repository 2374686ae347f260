package views

import "errors"

var ErrUnknownView = errors.New("unknown view")
