package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookreview/internal/httpx"
	"bookreview/internal/platform/logger"
)

type HTTPHandler struct {
	manager      *Manager
	cookieSecure bool
}

func NewHTTPHandler(manager *Manager, cookieSecure bool) *HTTPHandler {
	return &HTTPHandler{manager: manager, cookieSecure: cookieSecure}
}

type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type LoginView struct {
	Authenticated bool   `json:"authenticated"`
	User          *User  `json:"user,omitempty"`
	From          string `json:"from,omitempty"`
}

// LoginPage handles GET /login
// @Summary Login view
// @Tags session
// @Produce json
// @Param from query string false "Path to return to after login"
// @Success 200 {object} httpx.SuccessResponse
// @Router /login [get]
func (h *HTTPHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	view := LoginView{From: r.URL.Query().Get("from")}
	if u, ok, err := h.currentUser(r); err == nil && ok {
		view.Authenticated = true
		view.User = &u
	}
	httpx.JSONSuccess(w, r, view, nil)
}

// Login handles POST /login
// @Summary Log in
// @Description Any non-empty username and password is accepted
// @Tags session
// @Accept json
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Please enter both username and password", details)
		return
	}

	sid, u, err := h.manager.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmptyCredentials) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Please enter both username and password", nil)
			return
		}
		logger.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("login failed")
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "SESSION_UNAVAILABLE", "Session store unavailable", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.manager.ttl.Seconds()),
	})

	httpx.JSONSuccess(w, r, u, map[string]any{"redirect": "/dashboard"})
}

// Logout handles POST /logout
// @Summary Log out
// @Tags session
// @Success 204 "No Content"
// @Router /logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		if err := h.manager.Logout(r.Context(), c.Value); err != nil {
			logger.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("logout failed")
			httpx.JSONError(w, r, http.StatusServiceUnavailable, "SESSION_UNAVAILABLE", "Session store unavailable", nil)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) currentUser(r *http.Request) (User, bool, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return User{}, false, nil
	}
	return h.manager.Current(r.Context(), c.Value)
}
