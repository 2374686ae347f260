package insight

import "errors"

var ErrUnknownComponent = errors.New("unknown blueprint component")
