package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the access gate and the moderation workflow.
// Handlers map these to HTTP status codes; nothing here is retried.
var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrAccountDisabled   = errors.New("account is disabled")
	ErrBusinessNotLinked = errors.New("account is not linked to a business")
	ErrBusinessNotActive = errors.New("business is not active")
	ErrNotFound          = errors.New("resource not found")
)

// ForbiddenError is a role/ownership guard failure: the actor may never
// perform this action on this resource.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

// IsForbiddenError checks if an error is a ForbiddenError
func IsForbiddenError(err error) (*ForbiddenError, bool) {
	var forbiddenErr *ForbiddenError
	if errors.As(err, &forbiddenErr) {
		return forbiddenErr, true
	}
	return nil, false
}

// InvalidTransitionError is a state guard failure: the actor could perform
// this action, but not from the article's current status.
type InvalidTransitionError struct {
	From   string
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from status %q", e.Action, e.From)
}

// NewInvalidTransitionError creates a new invalid transition error
func NewInvalidTransitionError(action, from string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, From: from}
}

// IsInvalidTransitionError checks if an error is an InvalidTransitionError
func IsInvalidTransitionError(err error) (*InvalidTransitionError, bool) {
	var transitionErr *InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return transitionErr, true
	}
	return nil, false
}

// ValidationError represents a validation failure on a single field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}

// ConflictError represents a resource conflict (e.g., already exists)
type ConflictError struct {
	Resource string `json:"resource"`
	Message  string `json:"message"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Message)
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{Resource: resource, Message: message}
}
