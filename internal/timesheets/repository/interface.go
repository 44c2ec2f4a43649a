// Package repository provides data access for crew time entries.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one clock-in/clock-out pair for a crew member on a work order.
// An open entry has a nil ClockOut.
type Entry struct {
	ID          uuid.UUID  `json:"id"`
	WorkOrderID uuid.UUID  `json:"workOrderId"`
	UserID      uuid.UUID  `json:"userId"`
	ClockIn     time.Time  `json:"clockIn"`
	ClockOut    *time.Time `json:"clockOut,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateParams opens a new time entry.
type CreateParams struct {
	WorkOrderID uuid.UUID
	UserID      uuid.UUID
	ClockIn     time.Time
	Notes       *string
}

// MemberHours is one crew member's closed-entry total on a work order.
type MemberHours struct {
	UserID uuid.UUID `json:"userId"`
	Hours  float64   `json:"hours"`
}

// Reader defines read operations for time entries.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Entry, error)
	GetOpenEntry(ctx context.Context, workOrderID, userID uuid.UUID) (Entry, error)
	GetOpenEntryByUser(ctx context.Context, userID uuid.UUID) (Entry, error)
	ListByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]Entry, error)
	HoursByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]MemberHours, error)
}

// Writer defines write operations for time entries.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (Entry, error)
	Close(ctx context.Context, id uuid.UUID, clockOut time.Time, notes *string) (Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines read and write operations.
type Repository interface {
	Reader
	Writer
}
