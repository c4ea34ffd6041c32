package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers every login failure, unknown email and
	// wrong password alike, so responses never reveal whether an account
	// exists.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrSessionTokenCreationFailed = errors.New("session token creation failed")
	ErrSessionExpiredOrInvalid    = errors.New("session is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
