package httpapi

import (
	"net/http"
	"strings"
)

func writeJSON(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, v)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// pathID returns the single path segment after prefix, or "" if there is none.
func pathID(r *http.Request, prefix string) string {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
