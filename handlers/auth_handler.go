package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vinworld/docket"
	"vinworld/models"
	"vinworld/session"
	"vinworld/upstream"
)

// SessionCookie carries the "<id>.<secret>" credential.
const SessionCookie = "vinworld_session"

type AuthHandler struct {
	API      upstream.API
	Sessions *session.Manager
	// Forms, when set, lets logout discard the session's open draft.
	Forms *docket.FormStore
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	User      models.UserProfile `json:"user"`
	SessionID string             `json:"sessionId"`
	LoginTime time.Time          `json:"loginTime"`
	ExpiresAt time.Time          `json:"expiresAt"`
	Token     string             `json:"token,omitempty"`
}

// Login authenticates against the upstream service and mints a session.
// "Remember me" switches the session onto the persistent store and keeps
// the username for the next login screen.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Identifier) == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Please enter your Employee ID",
		})
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Please enter your password",
		})
		return
	}

	result, err := h.API.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			writeJSON(w, http.StatusUnauthorized, ApiResponse{
				Success: false,
				Message: apiErr.Message,
			})
			return
		}
		writeJSON(w, http.StatusBadGateway, ApiResponse{
			Success: false,
			Message: "Network error. Please check your connection and try again.",
		})
		return
	}

	if err := h.Sessions.RememberUsername(r.Context(), req.Identifier, req.RememberMe); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to store login preference: " + err.Error(),
		})
		return
	}

	sess, credential, err := h.Sessions.Begin(r.Context(), result.User, req.RememberMe)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to create session: " + err.Error(),
		})
		return
	}

	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    credential,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if req.RememberMe {
		cookie.Expires = sess.ExpiresAt
	}
	http.SetCookie(w, cookie)

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Login successful",
		Data: loginResponse{
			User:      sess.User,
			SessionID: sess.ID,
			LoginTime: sess.LoginTime,
			ExpiresAt: sess.ExpiresAt,
			Token:     result.Token,
		},
	})
}

// Logout ends the session everywhere and clears the remembered username.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		_ = h.Sessions.End(r.Context(), c.Value)
		if h.Forms != nil {
			id, _, _ := strings.Cut(c.Value, ".")
			h.Forms.Close(id)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Logged out"})
}

// Session returns the current profile; this is where load-time expiry is
// rechecked.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Require(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: sess})
}

// RememberedUsername serves the login screen's convenience value.
func (h *AuthHandler) RememberedUsername(w http.ResponseWriter, r *http.Request) {
	username, err := h.Sessions.RememberedUsername(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to load remembered username: " + err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]string{"username": username},
	})
}

// Require resolves the caller's session or answers 401. Expiry forces a
// logout, matching the screens' behavior.
func (h *AuthHandler) Require(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, ApiResponse{
			Success: false,
			Message: "Not logged in",
		})
		return nil, false
	}

	sess, err := h.Sessions.Load(r.Context(), c.Value)
	if err != nil {
		msg := "Not logged in"
		if errors.Is(err, session.ErrExpired) {
			msg = "Session expired. Please log in again."
		}
		writeJSON(w, http.StatusUnauthorized, ApiResponse{
			Success: false,
			Message: msg,
		})
		return nil, false
	}
	return sess, true
}
