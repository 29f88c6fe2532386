package v1

import "net/http"

// requireHistory wraps a handler and returns 503 if trailer history is not configured.
func (s *Server) requireHistory(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.History == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Trailer history not configured")
			return
		}
		next(w, r)
	}
}
