package model

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failure so the HTTP boundary can pick a status code
// without inspecting message text.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// AppError is the single error type that flows from any component to the
// boundary. Operational marks anticipated, user-facing failures; everything
// else is logged in full server-side and reported generically.
type AppError struct {
	Kind        ErrorKind
	Message     string
	Operational bool
	Err         error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewInvalidInput builds an operational 400 error.
func NewInvalidInput(message string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message, Operational: true}
}

// NewUnauthenticated builds an operational 401 error.
func NewUnauthenticated(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message, Operational: true}
}

// NewForbidden builds an operational 403 error.
func NewForbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message, Operational: true}
}

// NewNotFound builds an operational 404 error.
func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message, Operational: true}
}

// NewConflict builds an operational 409 error.
func NewConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Operational: true}
}

// NewInternal wraps an unexpected failure. Not operational: the client sees a
// generic message, the cause stays in the server log.
func NewInternal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Operational: false, Err: err}
}

// AsAppError extracts an *AppError from err, falling back to an internal
// error so the boundary always has a kind to translate.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: KindInternal, Message: "Something went wrong", Operational: false, Err: err}
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = NewNotFound("User not found")

	// ErrPostNotFound is returned when a post cannot be found
	ErrPostNotFound = NewNotFound("Post not found")

	// ErrCommentNotFound is returned when a comment cannot be found
	ErrCommentNotFound = NewNotFound("Comment not found")

	// ErrUsernameExists is returned when the username is already taken
	ErrUsernameExists = NewConflict("Username already exists")

	// ErrEmailExists is returned when the email is already registered
	ErrEmailExists = NewConflict("Email already exists")

	// ErrNoUserWithEmail is returned on login with an unknown email
	ErrNoUserWithEmail = NewUnauthenticated("There is no user with this Email")

	// ErrPasswordMismatch is returned on login with a wrong password
	ErrPasswordMismatch = NewUnauthenticated("Password doesn't match")

	// ErrAlreadyFriends is returned when sending a request to an existing friend
	ErrAlreadyFriends = NewConflict("This is already your friend")

	// ErrNoPendingRequest is returned when responding to a request that does not exist
	ErrNoPendingRequest = NewInvalidInput("No pending request from this user")
)
