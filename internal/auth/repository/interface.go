// Package repository provides data access for company users.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleOffice = "office"
	RoleCrew   = "crew"
)

// User is a company staff account.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CreateParams creates a user account.
type CreateParams struct {
	Email        string
	Name         string
	Role         string
	PasswordHash string
}

// Reader defines read operations for users.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
}

// Writer defines write operations for users.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	SetActive(ctx context.Context, id uuid.UUID, isActive bool) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Repository combines read and write operations.
type Repository interface {
	Reader
	Writer
}
