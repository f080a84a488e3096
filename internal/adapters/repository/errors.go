package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrLoadKnowledge = errors.New("load knowledge failed")
	ErrSinkClosed    = errors.New("interaction log closed")
)
