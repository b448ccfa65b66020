// Package api holds the uniform JSON response envelope shared by all
// handlers: successes are handler-specific objects with "success":true,
// failures are always {"success":false,"error":"..."}.
package api

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes the uniform failure envelope. The message must be safe to
// show to clients; internal detail belongs in the server log.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
