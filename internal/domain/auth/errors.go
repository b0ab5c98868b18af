package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidToken = errors.New("invalid or missing access token")
)
