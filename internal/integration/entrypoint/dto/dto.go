// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse is a body carrying only a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
