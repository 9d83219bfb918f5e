package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrMalformedRow  = errors.New("malformed participant row")
	ErrDuplicateID   = errors.New("duplicate participant id")
	ErrInvalidPerson = errors.New("invalid participant")
)
