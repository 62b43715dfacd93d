package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/isdelr/accounts-be/internal/auth"
	"github.com/isdelr/accounts-be/internal/services"
	"github.com/isdelr/accounts-be/internal/validation"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service  services.UserServiceProvider
	tokenTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: service, tokenTTL: tokenTTL}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration. No token is issued here; the
// client logs in afterwards.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	_, err := h.service.Register(payload.Username, payload.Email, payload.Password)
	if err != nil {
		var fieldErr *validation.FieldError
		switch {
		case errors.As(err, &fieldErr):
			writeError(w, http.StatusBadRequest, fieldErr.Error())
		case errors.Is(err, services.ErrEmailInUse), errors.Is(err, services.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, "User with this email already exists.")
		case errors.Is(err, services.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, "User with this username already exists.")
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
			writeError(w, http.StatusInternalServerError, "Error during signup.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully."})
}

// Login handles user authentication and session token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, token, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		var fieldErr *validation.FieldError
		switch {
		case errors.As(err, &fieldErr):
			writeError(w, http.StatusBadRequest, fieldErr.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			writeError(w, http.StatusUnauthorized, "Invalid credentials.")
		default:
			log.Error().Err(err).Str("username", payload.Username).Msg("Login failed")
			writeError(w, http.StatusInternalServerError, "Server error during login.")
		}
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"message": "User logged in successfully.",
		"user":    user,
	})
}

// Me retrieves the currently authenticated user from the token claims.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(auth.UserClaimsKey).(*auth.Claims)
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeError(w, http.StatusInternalServerError, "Could not retrieve user from token.")
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", claims.UserID).Msg("User from token not found in DB")
		writeError(w, http.StatusNotFound, "User not found.")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
