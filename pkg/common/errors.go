package common

import "net/http"

// AppError is an application error carrying an HTTP status. It is reserved
// for genuinely unexpected failures (collaborator unreachable, programmer
// error); expected domain rejections are modeled as tagged results in their
// own packages, never as errors.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: "not_found", Message: message}
}
