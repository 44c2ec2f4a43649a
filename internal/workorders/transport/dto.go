// Package transport defines request/response DTOs for the work orders module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"clearing_ops_backend/internal/workorders/repository"
)

// CreateWorkOrderRequest schedules a job for an accepted quote.
type CreateWorkOrderRequest struct {
	QuoteID        uuid.UUID  `json:"quoteId" validate:"required"`
	CrewLead       string     `json:"crewLead" validate:"required,max=200"`
	Crew           []string   `json:"crew" validate:"omitempty,dive,max=200"`
	Equipment      *string    `json:"equipment" validate:"omitempty,max=500"`
	ScheduledStart time.Time  `json:"scheduledStart" validate:"required"`
	ScheduledEnd   *time.Time `json:"scheduledEnd"`
	EstimatedHours *float64   `json:"estimatedHours" validate:"omitempty,gt=0"`
	Notes          *string    `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateWorkOrderRequest reschedules or restaffs a work order. Nil fields
// are unchanged.
type UpdateWorkOrderRequest struct {
	CrewLead       *string    `json:"crewLead" validate:"omitempty,max=200"`
	Crew           []string   `json:"crew" validate:"omitempty,dive,max=200"`
	Equipment      *string    `json:"equipment" validate:"omitempty,max=500"`
	ScheduledStart *time.Time `json:"scheduledStart"`
	ScheduledEnd   *time.Time `json:"scheduledEnd"`
	EstimatedHours *float64   `json:"estimatedHours" validate:"omitempty,gt=0"`
	Notes          *string    `json:"notes" validate:"omitempty,max=2000"`
}

// CancelWorkOrderRequest records an optional cancellation reason.
type CancelWorkOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// ListWorkOrdersRequest filters the work order list.
type ListWorkOrdersRequest struct {
	Status string     `form:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Limit  int        `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int        `form:"offset" validate:"omitempty,gte=0"`
}

// ListWorkOrdersResponse is a paginated work order list.
type ListWorkOrdersResponse struct {
	Items []repository.WorkOrder `json:"items"`
	Total int                    `json:"total"`
}
