package api

import (
	"net/http"

	"github.com/vytor/bardspeak/internal/logger"
)

type registerRequest struct {
	Username       string `json:"username"`
	RegisterNumber string `json:"register_number"`
	Department     string `json:"department"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Register(r.Context(), req.Username, req.RegisterNumber, req.Department)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setSessionCookie(w, userCookieName, user.ID)
	writeJSON(w, r, http.StatusCreated, map[string]any{"user": user})
}

type loginRequest struct {
	RegisterNumber string `json:"register_number"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Login(r.Context(), req.RegisterNumber)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setSessionCookie(w, userCookieName, user.ID)
	writeJSON(w, r, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Debug("logging out")
	clearSessionCookie(w, userCookieName)
	clearSessionCookie(w, adminCookieName)
	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	profile, err := s.UserService.Profile(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, profile)
}

type updateProfileRequest struct {
	Username   string `json:"username"`
	Department string `json:"department"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.UserService.UpdateProfile(r.Context(), user.ID, req.Username, req.Department)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"user": updated})
}
