package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// session lifecycle errors
	ErrSessionExpired = errors.New("session expired")
)
