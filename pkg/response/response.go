package response

import (
	"encoding/json"
	"net/http"
)

// Stable machine-checkable error kinds. Clients branch on these, not on
// the human-readable message.
const (
	CodeInvalidToken       = "invalid_token"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnknownActor       = "unknown_actor"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeSlotOccupied       = "slot_occupied"
	CodeInvalidTransition  = "invalid_transition"
	CodePastDateTime       = "past_datetime"
	CodeValidationError    = "validation_error"
	CodeConflict           = "conflict"
	CodeInternal           = "internal"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(w http.ResponseWriter, statusCode int, code, message string) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Code:    code,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	JSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Code:    CodeValidationError,
		Error:   errors,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, CodeInvalidToken, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, CodeForbidden, message)
}

func NotFound(w http.ResponseWriter, code, message string) {
	if message == "" {
		message = "Resource not found"
	}
	if code == "" {
		code = CodeNotFound
	}
	Error(w, http.StatusNotFound, code, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, CodeInternal, message)
}
