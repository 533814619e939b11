package types

import (
	"fmt"
	"net/http"
)

// CustomError is returned from middleware and handlers when the response code
// and error type are known. The global error handler renders it.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Unauthorized builds a 401 CustomError
func Unauthorized(message, errorType string) *CustomError {
	return &CustomError{Code: http.StatusUnauthorized, Message: message, Type: errorType}
}

// NotFound builds a 404 CustomError
func NotFound(message, errorType string) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: message, Type: errorType}
}

// BadRequest builds a 400 CustomError
func BadRequest(message, errorType string) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: message, Type: errorType}
}
