package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MehdiShad/CardexPro/internal/domain"
)

// TokenPair is the refresh/access credential pair issued at
// registration and login.
type TokenPair struct {
	Refresh string
	Access  string
}

// AuthService handles user creation, credential checks, and JWT token
// operations.
type AuthService struct {
	users           domain.UserRepository
	jwtSecret       []byte
	bcryptCost      int
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

// NewAuthService creates a new AuthService. The configured lifetimes
// are used as-is; see config.Config for the inherited access/refresh
// inversion.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int, accessLifetime, refreshLifetime time.Duration) *AuthService {
	return &AuthService{
		users:           users,
		jwtSecret:       []byte(jwtSecret),
		bcryptCost:      bcryptCost,
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
	}
}

// Register creates a regular active user and issues its token pair.
// Field-level input validation happens at the handler boundary; this
// enforces model invariants and email uniqueness.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	user, err := s.CreateUser(ctx, email, password, true, false)
	if err != nil {
		return nil, TokenPair{}, err
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("issue token pair: %w", err)
	}
	return user, pair, nil
}

// CreateUser creates a user with a normalized lowercase email. An empty
// password leaves the account without a usable password.
func (s *AuthService) CreateUser(ctx context.Context, email, password string, isActive, isAdmin bool) (*domain.User, error) {
	user := &domain.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		IsActive: isActive,
		IsAdmin:  isAdmin,
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateSuperuser creates an active admin user with the superuser flag set.
func (s *AuthService) CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.CreateUser(ctx, email, password, true, true)
	if err != nil {
		return nil, err
	}

	user.IsSuperuser = true
	if err := s.users.UpdateFields(ctx, user, []string{"is_superuser"}); err != nil {
		return nil, fmt.Errorf("set superuser flag: %w", err)
	}
	return user, nil
}

// BootstrapSuperuser creates the superuser if no account with that
// email exists yet. It is safe to call on every startup.
func (s *AuthService) BootstrapSuperuser(ctx context.Context, email, password string) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup superuser: %w", err)
	}
	return s.CreateSuperuser(ctx, email, password)
}

// EmailTaken reports whether an account with the given email already
// exists. The check is case-insensitive.
func (s *AuthService) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("lookup email: %w", err)
}

// Login verifies credentials and returns a fresh token pair. Inactive
// accounts and accounts without a usable password cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, TokenPair{}, domain.ErrUnauthorized
		}
		return nil, TokenPair{}, fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive || !user.HasUsablePassword() {
		return nil, TokenPair{}, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, domain.ErrUnauthorized
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("issue token pair: %w", err)
	}
	return user, pair, nil
}

// IssueTokenPair signs a refresh token and its derived access token.
func (s *AuthService) IssueTokenPair(user *domain.User) (TokenPair, error) {
	refresh, err := s.signToken(user.ID, "refresh", s.refreshLifetime, true)
	if err != nil {
		return TokenPair{}, err
	}
	access, err := s.signToken(user.ID, "access", s.accessLifetime, false)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Refresh: refresh, Access: access}, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	userID, err := s.parseToken(refreshToken, "refresh")
	if err != nil {
		return "", err
	}
	return s.signToken(userID, "access", s.accessLifetime, false)
}

// ValidateAccessToken parses an access token and returns the user ID
// from the sub claim.
func (s *AuthService) ValidateAccessToken(tokenString string) (int64, error) {
	return s.parseToken(tokenString, "access")
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) signToken(userID int64, tokenType string, lifetime time.Duration, withJTI bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        strconv.FormatInt(userID, 10),
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(lifetime).Unix(),
	}
	if withJTI {
		claims["jti"] = uuid.NewString()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) parseToken(tokenString, wantType string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	if tokenType, _ := claims["token_type"].(string); tokenType != wantType {
		return 0, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	return userID, nil
}
