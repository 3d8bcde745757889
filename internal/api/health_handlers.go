package api

import (
	"net/http"

	"github.com/tsundoku-app/tsundoku-server/internal/http/response"
)

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	status := map[string]any{
		"status": "healthy",
	}
	if s.search != nil {
		if count, err := s.search.DocumentCount(); err == nil {
			status["indexedBooks"] = count
		}
	}
	response.Success(w, status, s.logger)
}
