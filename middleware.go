package toyhtml

import (
	"log/slog"
	"net/http"
)

// LoggerMiddleware logs every request at info level before passing it on.
func LoggerMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("HTTP request", "method", r.Method, "url", r.URL)
		next.ServeHTTP(w, r)
	})
}
