// Package transport defines request/response DTOs for the auth module.
package transport

import "clearing_ops_backend/internal/auth/repository"

// LoginRequest authenticates a staff account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CreateUserRequest adds a staff account (admin only).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin office crew"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// SetUserActiveRequest enables or disables an account (admin only).
type SetUserActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// TokenPair carries a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// LoginResponse pairs the tokens with the authenticated user.
type LoginResponse struct {
	User   repository.User `json:"user"`
	Tokens TokenPair       `json:"tokens"`
}
