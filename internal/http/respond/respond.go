package respond

import (
	"encoding/json"
	"net/http"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// fallbackBody is sent when a payload cannot be encoded.
var fallbackBody = []byte(`{"code":500,"message":"failed to encode response"}` + "\n")

// JSON writes a success or informational response using the common envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, Envelope{Code: status, Message: message, Data: data})
}

// Error writes an error response with the shared envelope structure.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, Envelope{Code: status, Message: message})
}

// write encodes before touching the status line so an unencodable payload
// still produces a well-formed 500.
func write(w http.ResponseWriter, payload Envelope) {
	body, err := json.Marshal(payload)
	status := payload.Code
	if err != nil {
		body, status = fallbackBody, http.StatusInternalServerError
	} else {
		body = append(body, '\n')
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
