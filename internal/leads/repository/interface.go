package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead statuses form the follow-up workflow.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQuoted    = "quoted"
	StatusWon       = "won"
	StatusLost      = "lost"
)

// Lead is an inbound prospective-customer inquiry. Contact and project
// fields are optional; partial leads are accepted and simply score lower.
type Lead struct {
	ID             uuid.UUID  `json:"id"`
	Name           *string    `json:"name,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Address        *string    `json:"address,omitempty"`
	Acreage        *float64   `json:"acreage,omitempty"`
	PackageSlug    *string    `json:"packageSlug,omitempty"`
	EstimatedValue *int64     `json:"estimatedValue,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	Source         *string    `json:"source,omitempty"`
	TimeOnSiteSec  *int       `json:"timeOnSiteSec,omitempty"`
	PagesViewed    *int       `json:"pagesViewed,omitempty"`
	Status         string     `json:"status"`
	AssignedTo     *uuid.UUID `json:"assignedTo,omitempty"`
	SubmittedAt    time.Time  `json:"submittedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateParams contains parameters for creating a lead.
type CreateParams struct {
	Name           *string
	Email          *string
	Phone          *string
	Address        *string
	Acreage        *float64
	PackageSlug    *string
	EstimatedValue *int64
	Notes          *string
	Source         *string
	TimeOnSiteSec  *int
	PagesViewed    *int
	SubmittedAt    time.Time
}

// UpdateParams contains parameters for updating a lead.
// Nil fields are left unchanged.
type UpdateParams struct {
	ID             uuid.UUID
	Name           *string
	Email          *string
	Phone          *string
	Address        *string
	Acreage        *float64
	PackageSlug    *string
	EstimatedValue *int64
	Notes          *string
	AssignedTo     *uuid.UUID
}

// ListParams filters and paginates the lead list.
type ListParams struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// LeadReader provides read operations for leads.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
}

// LeadWriter provides write operations for leads.
type LeadWriter interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	Update(ctx context.Context, params UpdateParams) (Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines all lead repository operations.
type Repository interface {
	LeadReader
	LeadWriter
}
