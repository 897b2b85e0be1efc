package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"uprala/pkg/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyRequestID contextKey = "request_id"
	contextKeyAdmin     contextKey = "admin"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.requestLogger(r).WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

func (s *Service) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.metrics.httpRequests.WithLabelValues(r.Method, strconv.Itoa(rw.statusCode)).Inc()
		s.metrics.httpDuration.WithLabelValues(r.Method).Observe(time.Since(started).Seconds())
	})
}

func (s *Service) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.requestLogger(r).WithFields(logrus.Fields{
					"panic": fmt.Sprint(rec),
					"stack": string(debug.Stack()),
				}).Error("handler panicked")
				s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin accepts a bearer token or the encrypted session cookie set at
// login and puts the verified claims on the request context.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := s.tokenFromRequest(r)
		if err != nil {
			s.requestLogger(r).WithError(err).Debug("no admin token on request")
			s.writeError(w, r, err)
			return
		}

		claims, err := s.auth.Verify(r.Context(), token)
		if err != nil {
			s.requestLogger(r).WithError(err).Debug("admin token rejected")
			s.writeError(w, r, types.ErrInvalidToken)
			return
		}

		s.requestLogger(r).WithFields(logrus.Fields{
			"admin_id": claims.Subject,
			"username": claims.Username,
		}).Debug("authenticated admin")

		ctx := context.WithValue(r.Context(), contextKeyAdmin, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", fmt.Errorf("%w: malformed authorization header", types.ErrUnauthorized)
		}
		return strings.TrimSpace(token), nil
	}

	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil {
		return "", fmt.Errorf("%w: no token", types.ErrUnauthorized)
	}

	var token string
	if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &token); err != nil {
		return "", fmt.Errorf("%w: unreadable session cookie", types.ErrUnauthorized)
	}

	return token, nil
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") && !strings.HasPrefix(path, s.mediaPrefix()+"/") {
			newURL := *r.URL
			newURL.Path = strings.TrimRight(path, "/")
			if newURL.Path == "" {
				newURL.Path = "/"
			}

			// 308 keeps the method and body for API clients.
			http.Redirect(w, r, newURL.String(), http.StatusPermanentRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) mediaPrefix() string {
	return "/" + strings.Trim(s.config.MediaURLPrefix, "/")
}

func (s *Service) requestLogger(r *http.Request) logrus.FieldLogger {
	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		return s.logger
	}
	return s.logger.WithField("request_id", requestID)
}

func adminFromContext(ctx context.Context) (*types.AdminClaims, bool) {
	claims, ok := ctx.Value(contextKeyAdmin).(*types.AdminClaims)
	return claims, ok
}
