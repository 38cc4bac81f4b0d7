package auth

import "errors"

// Failure kinds surfaced to the transport layer. Token problems are
// deliberately collapsed into ErrUnauthorized so a caller cannot tell which
// check rejected it.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrPasswordMismatch = errors.New("the confirm password does not match the password")
	ErrUserNotFound     = errors.New("user not found")
)
