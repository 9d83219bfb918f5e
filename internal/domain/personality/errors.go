package personality

import "errors"

// Sentinel kinds for survey errors.
var (
	ErrInvalidAnswers = errors.New("invalid survey answers")
	ErrInvalidRating  = errors.New("rating out of range")
)
