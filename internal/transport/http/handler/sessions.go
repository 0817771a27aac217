package handler

import (
	"encoding/json"
	"net/http"

	"github.com/abdussamadse/todo-server/internal/application/session"
	"github.com/abdussamadse/todo-server/internal/domain"
	"github.com/abdussamadse/todo-server/internal/pkg/validate"
	"github.com/abdussamadse/todo-server/internal/transport/http/middleware"
)

// SessionHandler handles login and logout.
type SessionHandler struct {
	svc    session.Service
	secure bool // Secure flag on the token cookie, off in development
}

func NewSessionHandler(svc session.Service, secureCookies bool) *SessionHandler {
	return &SessionHandler{svc: svc, secure: secureCookies}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req session.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	// Inactive/blocked accounts get the distinguished forbidden response, not
	// an error envelope. Callers branch on it.
	switch result.Denied {
	case domain.StatusInactive:
		verified := false
		writeJSON(w, http.StatusForbidden, ForbiddenEnvelope{
			Message:         "Your account is inactive. Please verify your email or contact support for assistance.",
			IsEmailVerified: &verified,
		})
		return
	case domain.StatusBlocked:
		writeJSON(w, http.StatusForbidden, ForbiddenEnvelope{
			Message: "Your account has been blocked. Please contact support for assistance.",
		})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, LoginEnvelope{
		Success:         true,
		Message:         "Login successful",
		IsEmailVerified: true,
		Token:           result.Token,
		Data:            result.User,
	})
}

// Logout clears the token cookie. Tokens are stateless, so there is no
// server-side session to tear down.
func (h *SessionHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeSuccess(w, http.StatusOK, "Logged out successfully", nil)
}
