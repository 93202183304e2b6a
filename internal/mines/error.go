package mines

import "errors"

var ErrInvalidConfig = errors.New("invalid board configuration")
