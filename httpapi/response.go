package httpapi

import (
	"encoding/json"
	"net/http"
	"regexp"
)

// maxBodySize bounds request bodies this API will decode.
const maxBodySize = 1 << 20

// errorResponse is the standard error envelope for all duraq API errors.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// decodeJSON reads and decodes a JSON request body with size limiting.
// Writes a 400 error and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a standard error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// isValidUUID reports whether s looks like a canonical UUID string.
func isValidUUID(s string) bool {
	return uuidRe.MatchString(s)
}
