package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"uprala/pkg/types"
)

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input = new(types.LoginInput)
	if err := decodeJSON(w, r, input); err != nil {
		s.writeError(w, r, err)
		return
	}

	username := strings.TrimSpace(input.Username)

	token, err := s.auth.Login(r.Context(), username, input.Password)
	if err != nil {
		if errors.Is(err, types.ErrUnauthorized) {
			s.requestLogger(r).WithField("username", username).Info("admin login rejected")
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid username or password"})
			return
		}
		s.writeError(w, r, err)
		return
	}

	encryptedToken, err := s.cookie.Encode(s.config.CookieName, token.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Set httpOnly, secure cookie with the admin token
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encryptedToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(token.ExpiresAt).Seconds()),
		Path:     "/",
	})

	s.requestLogger(r).WithField("username", username).Info("admin logged in")

	s.writeJSON(w, http.StatusOK, token)
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleVerify(w http.ResponseWriter, r *http.Request) {
	claims, ok := adminFromContext(r.Context())
	if !ok {
		s.writeError(w, r, types.ErrUnauthorized)
		return
	}

	s.writeJSON(w, http.StatusOK, claims)
}
