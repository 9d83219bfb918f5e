package worker

import "errors"

// ErrTaskPanicked marks a job whose assembler panicked.
var ErrTaskPanicked = errors.New("assembly task panicked")
