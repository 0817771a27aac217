package handler

import (
	"encoding/json"
	"net/http"
)

// SuccessEnvelope is the generic response wrapper.
type SuccessEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorEnvelope is the error response wrapper. Status is "fail" for client
// errors and "error" for server errors.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LoginEnvelope wraps login responses.
type LoginEnvelope struct {
	Success         bool        `json:"success"`
	Message         string      `json:"message"`
	IsEmailVerified bool        `json:"isEmailVerified"`
	Token           string      `json:"token,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// ForbiddenEnvelope is the distinguished non-error login denial response.
type ForbiddenEnvelope struct {
	Message         string `json:"message"`
	IsEmailVerified *bool  `json:"isEmailVerified,omitempty"`
}

// PaginatedUsersEnvelope wraps the admin user listing.
type PaginatedUsersEnvelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, SuccessEnvelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	statusWord := "error"
	if status >= 400 && status < 500 {
		statusWord = "fail"
	}
	writeJSON(w, status, ErrorEnvelope{Status: statusWord, Message: msg})
}
