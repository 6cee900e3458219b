package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const ContentType = "application/json; charset=utf-8"

// Error codes shared by more than one handler.
const (
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
	CodeValidation   = "validation_error"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope wraps every /api/v1 response. Exactly one of Data and Error is set.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteJSON sends payload with status. Salary figures are never cached by
// intermediaries.
func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	h := w.Header()
	h.Set("Content-Type", ContentType)
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("encode api envelope failed", "status", status, "requestId", payload.RequestID, "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	FailWithDetails(w, status, code, message, nil, requestID)
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// NotFound reports a missing employee or salary record.
func NotFound(w http.ResponseWriter, what, requestID string) {
	Fail(w, http.StatusNotFound, CodeNotFound, what+" not found", requestID)
}
