package auth

import "errors"

var (
	// ErrUnauthorized covers missing, malformed, expired or forged credentials
	// and tokens without a subject.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidSubject means the token verified but its subject is not a user id.
	ErrInvalidSubject = errors.New("token subject is not a valid user id")
)
