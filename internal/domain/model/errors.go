package model

import "errors"

// Sentinel kinds for model parsing errors.
var (
	ErrUnknownRole     = errors.New("unknown role")
	ErrUnknownCategory = errors.New("unknown personality category")
)
