package app

import "errors"

var (
	// ErrInvalidCredentials is returned when the supplied credentials do not match.
	// The message is shown to end users and must not enable account enumeration.
	ErrInvalidCredentials = errors.New("Incorrect email address or password")

	ErrEmailAndPasswordRequired = errors.New("email and password required")
	ErrEmailAlreadyExists       = errors.New("email already exists")

	ErrMessageRequired = errors.New("message is required")

	// ErrUpstream covers generation API failures, including responses with
	// zero candidates. Handlers surface it as a generic "AI service error".
	ErrUpstream = errors.New("AI service error")
)
