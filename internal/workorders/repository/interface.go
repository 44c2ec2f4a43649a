// Package repository provides data access for work orders.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Work order statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// WorkOrder represents a scheduled job for an accepted quote.
type WorkOrder struct {
	ID             uuid.UUID  `json:"id"`
	QuoteID        uuid.UUID  `json:"quoteId"`
	Status         string     `json:"status"`
	CustomerName   string     `json:"customerName"`
	SiteAddress    string     `json:"siteAddress"`
	CrewLead       string     `json:"crewLead"`
	Crew           []string   `json:"crew"`
	Equipment      *string    `json:"equipment,omitempty"`
	ScheduledStart time.Time  `json:"scheduledStart"`
	ScheduledEnd   *time.Time `json:"scheduledEnd,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CompletedBy    *uuid.UUID `json:"completedBy,omitempty"`
	CancelReason   *string    `json:"cancelReason,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateParams creates a work order in status "scheduled".
type CreateParams struct {
	QuoteID        uuid.UUID
	CustomerName   string
	SiteAddress    string
	CrewLead       string
	Crew           []string
	Equipment      *string
	ScheduledStart time.Time
	ScheduledEnd   *time.Time
	EstimatedHours *float64
	Notes          *string
}

// UpdateParams reschedules or restaffs a work order. Nil fields are
// unchanged.
type UpdateParams struct {
	ID             uuid.UUID
	CrewLead       *string
	Crew           []string
	Equipment      *string
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	EstimatedHours *float64
	Notes          *string
}

// ListParams filters the work order list.
type ListParams struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Reader defines read operations for work orders.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (WorkOrder, error)
	GetByQuoteID(ctx context.Context, quoteID uuid.UUID) (WorkOrder, error)
	List(ctx context.Context, params ListParams) ([]WorkOrder, int, error)
}

// Writer defines write operations for work orders.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (WorkOrder, error)
	Update(ctx context.Context, params UpdateParams) (WorkOrder, error)
	MarkStarted(ctx context.Context, id uuid.UUID, startedAt time.Time) (WorkOrder, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time, completedBy uuid.UUID) (WorkOrder, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, reason *string) (WorkOrder, error)
}

// Repository combines read and write operations.
type Repository interface {
	Reader
	Writer
}
