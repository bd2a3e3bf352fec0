package store

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrMissingIdentity = errors.New("exactly one of userId or guestId is required")
)
