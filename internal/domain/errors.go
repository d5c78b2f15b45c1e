package domain

import "errors"

var (
	// ErrNotFound indicates no code was issued with the given value.
	ErrNotFound = errors.New("code not found")

	// ErrCodeExists indicates the code is already issued.
	ErrCodeExists = errors.New("code already exists")

	// ErrExpired indicates the code is past its expiry.
	ErrExpired = errors.New("code has expired")
)
