package services

import (
	"errors"
	"fmt"
)

// Kinds. Every error a service returns on purpose wraps exactly one of these, so the
// HTTP layer can pick a status with errors.Is.
var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrConflict           = errors.New("conflict with current state")
	ErrValidationFailed   = errors.New("validation failed")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")
)

// Error is a service error of a given kind. Its message is safe to show to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func validationError(format string, args ...any) error {
	return newError(ErrValidationFailed, fmt.Sprintf(format, args...))
}

var (
	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid username or password")
	ErrSessionInvalid     = newError(ErrUnauthorized, "session is invalid or has expired")

	ErrUsernameTaken       = newError(ErrConflict, "username is already taken")
	ErrJoinRequestPending  = newError(ErrConflict, "You already have a pending request for this event.")
	ErrAlreadyParticipant  = newError(ErrConflict, "You are already part of this event.")
	ErrJoinRequestRejected = newError(ErrConflict, "Your previous request was rejected.")
	ErrJoinRequestReviewed = newError(ErrConflict, "join request has already been reviewed")

	ErrUserNotFound        = newError(ErrNotFound, "user not found")
	ErrEventNotFound       = newError(ErrNotFound, "event not found")
	ErrInvalidJoinCode     = newError(ErrNotFound, "Invalid join code. Please check and try again.")
	ErrJoinRequestNotFound = newError(ErrNotFound, "join request not found")
	ErrParticipantNotFound = newError(ErrNotFound, "participant not found")
	ErrTeamNotFound        = newError(ErrNotFound, "team not found")
	ErrMatchNotFound       = newError(ErrNotFound, "match not found")
	ErrAlertNotFound       = newError(ErrNotFound, "alert not found")

	ErrNotEventOrganizer = newError(ErrForbiddenOperation, "only the event organizer can perform this action")

	ErrLogoStorageDisabled = newError(ErrValidationFailed, "logo storage is not configured")
	ErrUnsupportedLogoType = newError(ErrValidationFailed, "unsupported logo content type")

	ErrJoinCodeExhausted = errors.New("failed to generate a unique join code")
)
