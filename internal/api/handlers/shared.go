// Package handlers contains the HTTP layer: each handler parses and
// validates a request, delegates to a service, and renders the result.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// parseJSON decodes the request body into a value of type T.
// Unknown fields are rejected so typos in payloads surface as 400s
// instead of being silently dropped.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON body: %w", err)
	}

	return v, nil
}
