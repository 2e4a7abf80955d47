package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MehdiShad/CardexPro/internal/domain"
	"github.com/MehdiShad/CardexPro/internal/service"
)

// AuthHandler handles token issuance and refresh.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type obtainTokenInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *obtainTokenInput) Validate(context.Context) []FieldError {
	var fieldErrors []FieldError
	if in.Email == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "email", Messages: []string{"This field is required."}})
	}
	if in.Password == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "password", Messages: []string{"This field is required."}})
	}
	return fieldErrors
}

// HandleObtainToken verifies credentials and returns a token pair.
// POST /api/auth/token/
// Request:  {"email":"...","password":"..."}
// Response: {"refresh":"...","access":"..."}
func (h *AuthHandler) HandleObtainToken(w http.ResponseWriter, r *http.Request) {
	var in obtainTokenInput
	if err := readJSON(r, &in); err != nil {
		writeEnvelopeError(w, http.StatusBadRequest, "", "", "Invalid request body.")
		return
	}

	if ok, payload := CheckValid(r.Context(), &in); !ok {
		writeJSON(w, http.StatusBadRequest, payload)
		return
	}

	_, pair, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeEnvelopeError(w, http.StatusUnauthorized, "", "", "No active account found with the given credentials.")
			return
		}
		slog.Error("obtain token", "error", err)
		writeEnvelopeError(w, http.StatusBadRequest, "", "", "Could not issue tokens.")
		return
	}

	writeJSON(w, http.StatusOK, toTokenDTO(pair))
}

type refreshTokenInput struct {
	Refresh string `json:"refresh"`
}

func (in *refreshTokenInput) Validate(context.Context) []FieldError {
	if in.Refresh == "" {
		return []FieldError{{Field: "refresh", Messages: []string{"This field is required."}}}
	}
	return nil
}

// HandleRefreshToken exchanges a refresh token for a new access token.
// POST /api/auth/token/refresh/
// Request:  {"refresh":"..."}
// Response: {"access":"..."}
func (h *AuthHandler) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var in refreshTokenInput
	if err := readJSON(r, &in); err != nil {
		writeEnvelopeError(w, http.StatusBadRequest, "", "", "Invalid request body.")
		return
	}

	if ok, payload := CheckValid(r.Context(), &in); !ok {
		writeJSON(w, http.StatusBadRequest, payload)
		return
	}

	access, err := h.auth.RefreshAccessToken(in.Refresh)
	if err != nil {
		writeEnvelopeError(w, http.StatusUnauthorized, "", "", "Token is invalid or expired.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}
