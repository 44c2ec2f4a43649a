// Package transport defines request/response DTOs for the invoices module.
package transport

import (
	"github.com/google/uuid"

	"clearing_ops_backend/internal/invoices/repository"
)

// IssueFinalRequest cuts the final invoice for a completed work order.
type IssueFinalRequest struct {
	WorkOrderID uuid.UUID `json:"workOrderId" validate:"required"`
}

// ListInvoicesRequest filters the invoice list.
type ListInvoicesRequest struct {
	Status  string     `form:"status" validate:"omitempty,oneof=issued paid void"`
	Kind    string     `form:"kind" validate:"omitempty,oneof=deposit final"`
	QuoteID *uuid.UUID `form:"quoteId"`
	Limit   int        `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset  int        `form:"offset" validate:"omitempty,gte=0"`
}

// ListInvoicesResponse is a paginated invoice list.
type ListInvoicesResponse struct {
	Items []repository.Invoice `json:"items"`
	Total int                  `json:"total"`
}
