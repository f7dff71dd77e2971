package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// APIError is the single error shape handed to callers. Every transport or
// HTTP failure is normalized to it at the client boundary; callers never see
// raw net/http errors. Status 0 means the request never produced a response.
type APIError struct {
	Status    int                 `json:"status"`
	Message   string              `json:"message"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

func (e *APIError) Error() string { return e.Message }

// fixed user-facing messages per status
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request. Please check your input.",
	http.StatusUnauthorized:        "Please login to continue.",
	http.StatusForbidden:           "You do not have permission to perform this action.",
	http.StatusNotFound:            "The requested resource was not found.",
	http.StatusConflict:            "This resource already exists.",
	http.StatusInternalServerError: "Something went wrong on our end. Please try again later.",
	http.StatusServiceUnavailable:  "Service is temporarily unavailable.",
}

const networkErrorMessage = "Network error. Please check your connection."

// errorBody covers the shapes the backend uses for error payloads.
type errorBody struct {
	Message          string              `json:"message"`
	Error            string              `json:"error"`
	Errors           map[string][]string `json:"errors"`
	ValidationErrors map[string][]string `json:"validationErrors"`
}

// newStatusError builds an APIError for a non-2xx response, preferring the
// server-supplied message over the generic per-status one.
func newStatusError(status int, body []byte) *APIError {
	msg, ok := statusMessages[status]
	if !ok {
		msg = "An unexpected error occurred."
	}
	var fieldErrors map[string][]string
	if len(body) > 0 {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			if eb.Message != "" {
				msg = eb.Message
			} else if eb.Error != "" {
				msg = eb.Error
			}
			if eb.Errors != nil {
				fieldErrors = eb.Errors
			} else if eb.ValidationErrors != nil {
				fieldErrors = eb.ValidationErrors
			}
		}
	}
	return &APIError{Status: status, Message: msg, Errors: fieldErrors, Timestamp: time.Now().UTC()}
}

func newNetworkError() *APIError {
	return &APIError{Status: 0, Message: networkErrorMessage, Timestamp: time.Now().UTC()}
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsErrorStatus reports whether err is an APIError with the given status.
func IsErrorStatus(err error, status int) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Status == status
}

// IsAuthError reports whether err represents a 401 or 403 response.
func IsAuthError(err error) bool {
	return IsErrorStatus(err, http.StatusUnauthorized) || IsErrorStatus(err, http.StatusForbidden)
}

// IsValidationError reports whether err represents a 400 or 409 response.
func IsValidationError(err error) bool {
	return IsErrorStatus(err, http.StatusBadRequest) || IsErrorStatus(err, http.StatusConflict)
}
