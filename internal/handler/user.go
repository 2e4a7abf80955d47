package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"unicode"

	"github.com/MehdiShad/CardexPro/internal/domain"
	"github.com/MehdiShad/CardexPro/internal/service"
)

// UserHandler handles registration and profile HTTP requests.
type UserHandler struct {
	auth  *service.AuthService
	users domain.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *service.AuthService, users domain.UserRepository) *UserHandler {
	return &UserHandler{auth: auth, users: users}
}

// registerInput is the registration request body. It validates itself
// field by field; the email-taken check goes through the auth service.
type registerInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`

	emailTaken func(ctx context.Context, email string) (bool, error)
}

func (in *registerInput) Validate(ctx context.Context) []FieldError {
	var fieldErrors []FieldError

	if msgs := in.emailMessages(ctx); len(msgs) > 0 {
		fieldErrors = append(fieldErrors, FieldError{Field: "email", Messages: msgs})
	}
	if msgs := passwordMessages(in.Password); len(msgs) > 0 {
		fieldErrors = append(fieldErrors, FieldError{Field: "password", Messages: msgs})
	}
	if msgs := in.confirmMessages(); len(msgs) > 0 {
		fieldErrors = append(fieldErrors, FieldError{Field: "confirm_password", Messages: msgs})
	}
	return fieldErrors
}

func (in *registerInput) emailMessages(ctx context.Context) []string {
	var msgs []string
	if in.Email == "" {
		return []string{"This field is required."}
	}
	if len(in.Email) > 255 {
		msgs = append(msgs, "Ensure this field has no more than 255 characters.")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		msgs = append(msgs, "Enter a valid email address.")
	} else if in.emailTaken != nil {
		taken, err := in.emailTaken(ctx, in.Email)
		if err != nil {
			slog.Error("email uniqueness check", "error", err)
		} else if taken {
			msgs = append(msgs, "Email already taken")
		}
	}
	return msgs
}

// passwordMessages enforces the complexity rules: minimum length plus
// at least one digit, one letter, and one special character.
func passwordMessages(password string) []string {
	var msgs []string
	if password == "" {
		return []string{"This field is required."}
	}
	if len(password) < 8 {
		msgs = append(msgs, "Ensure this field has at least 8 characters.")
	}
	var hasDigit, hasLetter, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		default:
			hasSpecial = true
		}
	}
	if !hasDigit {
		msgs = append(msgs, "password must include number")
	}
	if !hasLetter {
		msgs = append(msgs, "password must include letter")
	}
	if !hasSpecial {
		msgs = append(msgs, "password must include special char")
	}
	return msgs
}

func (in *registerInput) confirmMessages() []string {
	if in.Password == "" || in.ConfirmPassword == "" {
		return []string{"Please fill password and confirm password"}
	}
	if in.Password != in.ConfirmPassword {
		return []string{"confirm password is not equal to password"}
	}
	return nil
}

// HandleRegister processes a registration request.
// POST /api/users/register/
// Request:  {"email":"...","password":"...","confirm_password":"..."}
// Response: {"email":..., "token":{"refresh":...,"access":...}, "created_at":..., "updated_at":...}
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := readJSON(r, &in); err != nil {
		writeEnvelopeError(w, http.StatusBadRequest, "", "", "Invalid request body.")
		return
	}
	in.emailTaken = h.auth.EmailTaken

	if ok, payload := CheckValid(r.Context(), &in); !ok {
		writeJSON(w, http.StatusBadRequest, payload)
		return
	}

	user, pair, err := h.auth.Register(r.Context(), in.Email, in.Password)
	if err != nil {
		// A concurrent registration can slip past the validator check.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeEnvelopeError(w, http.StatusBadRequest, "", "email", "Email already taken")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeEnvelopeError(w, http.StatusBadRequest, "", "", errorMessage(err))
			return
		}
		slog.Error("register user", "error", err)
		writeEnvelopeError(w, http.StatusBadRequest, "", "", "Could not create the user.")
		return
	}

	writeJSON(w, http.StatusOK, toRegisterDTO(user, pair))
}

// HandleMe returns the authenticated user's profile.
// GET /api/users/me/
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, SuccessResponse(map[string]any{
		"user": toUserDTO(user),
	}))
}

// profileFields are the only fields the profile endpoint may change.
var profileFields = []string{"first_name", "last_name"}

// HandleUpdateMe partially updates the authenticated user's profile.
// Only fields present in the body are considered; absent fields keep
// their current value.
// PATCH /api/users/me/
// Request:  {"first_name":"...","last_name":"..."} (both optional)
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var data map[string]any
	if err := readJSON(r, &data); err != nil {
		writeEnvelopeError(w, http.StatusBadRequest, "", "", "Invalid request body.")
		return
	}

	updated, changed, err := service.UpdateUser(r.Context(), h.users, user, profileFields, data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeEnvelopeError(w, http.StatusBadRequest, "", "", errorMessage(err))
			return
		}
		slog.Error("update profile", "error", err)
		writeEnvelopeError(w, http.StatusBadRequest, "", "", "Could not update the profile.")
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse(map[string]any{
		"user":    toUserDTO(updated),
		"updated": changed,
	}))
}

// errorMessage strips the sentinel prefix from a wrapped domain error,
// leaving the human-readable part.
func errorMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
