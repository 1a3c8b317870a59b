package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuthentication
	KindForbidden
	KindNotFound
	KindConflict
	KindUpstream
)

// Error is the typed error every service operation returns for expected failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	// Status overrides the default HTTP status of Kind when non-zero.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the status code the error maps to.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithStatus returns a copy of e rendered with the given status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// KindOf reports the Kind of err, KindUnexpected when err is not typed.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// As unwraps err into *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

var (
	ErrInvalidCredentials     = Authentication("invalid credentials")
	ErrAuthenticationRequired = Authentication("authentication credentials were not provided")
	ErrInvalidToken           = Authentication("token is invalid or expired")
	ErrRefreshTokenNotFound   = Authentication("refresh token not found")
	ErrRefreshTokenRevoked    = Authentication("refresh token blacklisted")
	ErrRefreshTokenExpired    = Authentication("refresh token expired")
	ErrTokenOwnerMismatch     = Authentication("refresh token does not belong to this account")
	ErrEmailAlreadyInUse      = Conflict("email already in use")
	ErrIllegalRoleTransition  = Conflict("role transition not allowed")
	ErrRoleRequired           = Forbidden("you do not have permission to perform this action")
	ErrTooManyRequests        = &Error{Kind: KindValidation, Message: "too many requests", Status: http.StatusTooManyRequests}
	ErrAccountNotFound        = &Error{Kind: KindNotFound, Message: "account not found"}
)
