package utils

import (
	"net/http"
	"strings"
)

// ExtractIDFromPath retrieves a path parameter value and removes file
// extensions like ".json".
func ExtractIDFromPath(r *http.Request, paramName string) string {
	rawID := r.PathValue(paramName)
	return strings.Split(rawID, ".json")[0]
}
