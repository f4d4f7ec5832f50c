package errors

import (
	"fmt"

	"github.com/goccy/go-json"
)

type AppError struct {
	Code    int    // Error code surfaced to the UI layer
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

const (
	ErrUnauthorized       = 1001
	ErrListingNotFound    = 1002
	ErrBidTooLow          = 1003
	ErrSelfBid            = 1004
	ErrDuplicateEmail     = 1005
	ErrInvalidCredentials = 1006
	ErrInvalidListing     = 1007
	ErrRateLimited        = 1008
	ErrNotSeller          = 1009
	ErrNotAdmin           = 1010
	ErrSearchNotFound     = 1011
	ErrInvalidCorner      = 1012

	ErrInternalServer = 500
)

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ToJSON renders the error in the shape view layers display directly.
func (e *AppError) ToJSON() string {
	payload := struct {
		Type    string `json:"type"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{Type: "error", Code: e.Code, Message: e.Message}

	b, err := json.Marshal(payload)
	if err != nil {
		return `{"type":"error","message":"internal error"}`
	}
	return string(b)
}

// Wrapping utility
func Wrap(err error, message string) *AppError {
	return &AppError{Message: message, Err: err}
}

// Error creation utility
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Code extracts the application error code, or 0 for foreign errors.
func Code(err error) int {
	if app, ok := err.(*AppError); ok {
		return app.Code
	}
	return 0
}
