package util

import (
	"fmt"
	"net/http"
	"strconv"
)

// GetQueryParam retrieves a query parameter from the request.
// If the parameter is missing, returns the provided default value.
func GetQueryParam(r *http.Request, key string, defaultValue string) string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	return val
}

// ParseID parses a positive integer identifier from its string form.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer")
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive")
	}
	return id, nil
}
