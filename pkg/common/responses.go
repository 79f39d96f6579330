package common

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// RespondJSON writes data as a JSON response. The frontend consumes the
// payload directly, so successful responses carry no envelope. Error bodies
// are produced by the error handler in pkg/errors.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// ExtractRequestID extracts the request ID from the request, generating one
// when no upstream component supplied it
func ExtractRequestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	if id := r.Header.Get("X-Amzn-Trace-Id"); id != "" {
		return id
	}
	return uuid.New().String()
}
