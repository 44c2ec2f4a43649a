// Package transport defines request/response DTOs for the timesheets module.
package transport

import (
	"github.com/google/uuid"

	"clearing_ops_backend/internal/timesheets/repository"
)

// ClockInRequest opens a time entry on a work order.
type ClockInRequest struct {
	WorkOrderID uuid.UUID `json:"workOrderId" validate:"required"`
	Notes       *string   `json:"notes" validate:"omitempty,max=1000"`
}

// ClockOutRequest closes the caller's open entry on a work order.
type ClockOutRequest struct {
	WorkOrderID uuid.UUID `json:"workOrderId" validate:"required"`
	Notes       *string   `json:"notes" validate:"omitempty,max=1000"`
}

// WorkOrderTimesheetResponse summarizes billable time on a work order.
type WorkOrderTimesheetResponse struct {
	Entries    []repository.Entry       `json:"entries"`
	Members    []repository.MemberHours `json:"members"`
	TotalHours float64                  `json:"totalHours"`
}
