// Package repository provides data access for invoices.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Invoice kinds.
const (
	KindDeposit = "deposit"
	KindFinal   = "final"
)

// Invoice statuses.
const (
	StatusIssued = "issued"
	StatusPaid   = "paid"
	StatusVoid   = "void"
)

// Invoice is a bill against a quote. Deposit invoices are cut on
// acceptance; the final invoice reconciles the completed work order.
type Invoice struct {
	ID            uuid.UUID  `json:"id"`
	QuoteID       uuid.UUID  `json:"quoteId"`
	WorkOrderID   *uuid.UUID `json:"workOrderId,omitempty"`
	InvoiceNumber string     `json:"invoiceNumber"`
	Kind          string     `json:"kind"`
	Status        string     `json:"status"`
	Amount        int64      `json:"amount"`
	IssuedAt      time.Time  `json:"issuedAt"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CreateParams issues a new invoice.
type CreateParams struct {
	QuoteID     uuid.UUID
	WorkOrderID *uuid.UUID
	Kind        string
	Amount      int64
	IssuedAt    time.Time
}

// ListParams filters the invoice list.
type ListParams struct {
	Status  string
	Kind    string
	QuoteID *uuid.UUID
	Limit   int
	Offset  int
}

// Reader defines read operations for invoices.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Invoice, error)
	List(ctx context.Context, params ListParams) ([]Invoice, int, error)
	ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]Invoice, error)
	SumPaidDeposits(ctx context.Context, quoteID uuid.UUID) (int64, error)
}

// Writer defines write operations for invoices.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (Invoice, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (Invoice, error)
	MarkVoid(ctx context.Context, id uuid.UUID) (Invoice, error)
}

// Repository combines read and write operations.
type Repository interface {
	Reader
	Writer
}
