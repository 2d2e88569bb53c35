package model

import "errors"

// Common errors used across the application
var (
	// ErrDuplicatePlayer is returned by a store when the (name, village)
	// pair is already on the roster
	ErrDuplicatePlayer = errors.New("player already registered for village")

	// ErrStoreClosed is returned by operations on a closed store
	ErrStoreClosed = errors.New("store is closed")
)
