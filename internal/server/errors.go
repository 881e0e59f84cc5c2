// Package server provides the HTTP REST API for the resume copilot.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/okgoogle13/resume-copilot/internal/gateway"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates a failed login. Deliberately does not
// reveal whether the account exists.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates the user was not found.
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates the current password is incorrect.
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrSessionNotFound indicates the wizard session does not exist or is
// owned by a different user.
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		invalidCreds *ErrInvalidCredentials
		userNotFound *ErrUserNotFound
		pwMismatch   *ErrPasswordMismatch
		sessNotFound *ErrSessionNotFound
		validation   *ErrValidation
	)
	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds), errors.As(err, &pwMismatch):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.As(err, &sessNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	}

	// AI gateway failures on invalid input are the caller's fault.
	var (
		analysisErr *gateway.AnalysisError
		searchErr   *gateway.SearchError
		genErr      *gateway.GenerationError
	)
	switch {
	case errors.As(err, &analysisErr):
		if analysisErr.Kind == gateway.KindInvalidInput {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	case errors.As(err, &searchErr):
		return http.StatusBadGateway
	case errors.As(err, &genErr):
		if genErr.Kind == gateway.KindInvalidInput {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
