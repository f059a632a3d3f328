package auth

import "errors"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidInput = errors.New("username and scope are required")
)
