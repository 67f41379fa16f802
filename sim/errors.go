package sim

import "errors"

// ErrInvalidConfig is wrapped by every scheduler configuration error.
var ErrInvalidConfig = errors.New("invalid scheduler config")
