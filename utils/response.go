package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the uniform envelope every endpoint writes. Data is
// omitted when empty so error responses stay two fields.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteJSON writes the envelope with the given status. Encoding errors are
// ignored: the header is already out, there is nothing left to tell the
// client.
func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// GetStringValue dereferences a nullable string, empty when nil.
func GetStringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
