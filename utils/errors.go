package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorKind classifies every failure the API can surface. Each kind maps to
// exactly one HTTP status; handlers never pick status codes ad hoc.
type ErrorKind int

const (
	KindUnauthenticated ErrorKind = iota
	KindForbidden
	KindProfileIncomplete
	KindNotFound
	KindTotalMismatch
	KindDuplicateEmail
	KindStorageFailure
	KindValidation
	KindInternal
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrUnauthenticated   = &AppError{KindUnauthenticated, "authentication required"}
	ErrInvalidToken      = &AppError{KindUnauthenticated, "invalid token"}
	ErrTokenExpired      = &AppError{KindUnauthenticated, "token expired"}
	ErrInvalidCredential = &AppError{KindUnauthenticated, "incorrect email or password"}
	ErrForbidden         = &AppError{KindForbidden, "you do not have permission for this resource"}
	ErrDuplicateEmail    = &AppError{KindDuplicateEmail, "email already registered"}
)

func (e ErrorKind) StatusCode() int {
	switch e {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindProfileIncomplete, KindTotalMismatch, KindDuplicateEmail, KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindStorageFailure:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// RespondAppError maps err onto the response envelope. Unclassified errors
// are reported as internal without leaking their detail.
func RespondAppError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondError(c, appErr.Kind.StatusCode(), appErr)
		return
	}
	ErrorLogger.Printf("unclassified error: %v", err)
	RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
}
