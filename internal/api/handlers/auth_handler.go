package handlers

import (
	"net/http"
	"time"

	"github.com/isdelr/shopsmart-be/internal/auth"
	"github.com/isdelr/shopsmart-be/internal/metrics"
	"github.com/isdelr/shopsmart-be/internal/services"
)

// AuthHandler handles HTTP requests for signup, login and the current user.
type AuthHandler struct {
	service services.AuthServiceProvider
	metrics *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler. m may be nil.
func NewAuthHandler(service services.AuthServiceProvider, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{service: service, metrics: m}
}

// SignupPayload defines the structure for signup requests.
type SignupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var payload SignupPayload
	if !decodeBody(w, r, &payload) {
		h.observe("signup", "bad_request", start)
		return
	}

	result, err := h.service.Signup(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		h.observe("signup", services.KindOf(err).String(), start)
		writeServiceError(w, r, "signup", err)
		return
	}

	h.observe("signup", "success", start)
	writeJSON(w, http.StatusCreated, result)
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var payload LoginPayload
	if !decodeBody(w, r, &payload) {
		h.observe("login", "bad_request", start)
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.observe("login", services.KindOf(err).String(), start)
		writeServiceError(w, r, "login", err)
		return
	}

	h.observe("login", "success", start)
	writeJSON(w, http.StatusOK, result)
}

// Me returns the user the bearer token was issued for.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.UserIDFromContext(r.Context())
	user, err := h.service.CurrentUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "me", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *AuthHandler) observe(op, outcome string, start time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveAuth(op, outcome, time.Since(start))
	}
}
