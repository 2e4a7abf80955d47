package handler

import (
	"encoding/json"
	"time"

	"github.com/MehdiShad/CardexPro/internal/domain"
	"github.com/MehdiShad/CardexPro/internal/service"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// TokenDTO is the JSON representation of a refresh/access token pair.
type TokenDTO struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

func toTokenDTO(pair service.TokenPair) TokenDTO {
	return TokenDTO{Refresh: pair.Refresh, Access: pair.Access}
}

// RegisterDTO is the registration response body.
type RegisterDTO struct {
	Email     string   `json:"email"`
	Token     TokenDTO `json:"token"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func toRegisterDTO(u *domain.User, pair service.TokenPair) RegisterDTO {
	return RegisterDTO{
		Email:     u.Email,
		Token:     toTokenDTO(pair),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// ActivityDTO is the JSON representation of an activity log entry.
type ActivityDTO struct {
	ID   int64           `json:"id"`
	User int64           `json:"user"`
	Body json.RawMessage `json:"body"`
}

func toActivityDTO(a *domain.Activity) ActivityDTO {
	return ActivityDTO{ID: a.ID, User: a.UserID, Body: a.Body}
}

func toActivityDTOs(activities []domain.Activity) []ActivityDTO {
	dtos := make([]ActivityDTO, len(activities))
	for i := range activities {
		dtos[i] = toActivityDTO(&activities[i])
	}
	return dtos
}
