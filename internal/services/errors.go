package services

import "errors"

// ErrEmailInUse is returned when registering an email that already has
// an account.
var ErrEmailInUse = errors.New("email is already in use")

// ErrInvalidCredentials is returned when login fails, for an unknown
// email and a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidInput is returned when a record violates a domain invariant.
var ErrInvalidInput = errors.New("invalid input")
