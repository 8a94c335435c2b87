package server

import (
	"net/http"
	"time"

	"github.com/agbru/vecsolve/internal/logging"
)

// loggingMiddleware logs the method, path, client and duration of each
// request.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", r.RemoteAddr),
			logging.Duration("duration", time.Since(start)))
	}
}
