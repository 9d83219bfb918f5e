package generator

import "errors"

// ErrInvalidCount is returned for a negative participant count.
var ErrInvalidCount = errors.New("participant count must not be negative")
