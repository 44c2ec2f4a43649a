// Package repository provides data access for quotes and their revisions.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clearing_ops_backend/internal/pricing"
)

// Quote statuses.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Quote represents a proposal sent to a customer. Pricing lives on
// revisions; the quote row carries workflow state and customer contact.
type Quote struct {
	ID            uuid.UUID  `json:"id"`
	LeadID        uuid.UUID  `json:"leadId"`
	QuoteNumber   string     `json:"quoteNumber"`
	Status        string     `json:"status"`
	PublicToken   string     `json:"-"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
	SiteAddress   string     `json:"siteAddress"`
	SignatureName *string    `json:"signatureName,omitempty"`
	DeclineReason *string    `json:"declineReason,omitempty"`
	SentAt        *time.Time `json:"sentAt,omitempty"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Revision is an immutable pricing snapshot. Recalculating a quote adds a
// new revision; earlier revisions are kept for the paper trail.
type Revision struct {
	ID             uuid.UUID          `json:"id"`
	QuoteID        uuid.UUID          `json:"quoteId"`
	Revision       int                `json:"revision"`
	ServiceType    string             `json:"serviceType"`
	Acreage        float64            `json:"acreage"`
	PackageSlug    *string            `json:"packageSlug,omitempty"`
	IncludeHauling bool               `json:"includeHauling"`
	LaborCost      int64              `json:"laborCost"`
	HaulingCost    int64              `json:"haulingCost"`
	Total          int64              `json:"total"`
	Deposit        int64              `json:"deposit"`
	Breakdown      []pricing.LineItem `json:"breakdown"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// CreateParams creates a quote together with its first revision.
type CreateParams struct {
	LeadID        uuid.UUID
	PublicToken   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	SiteAddress   string
	Revision      RevisionParams
}

// RevisionParams captures one pricing computation.
type RevisionParams struct {
	ServiceType    string
	Acreage        float64
	PackageSlug    *string
	IncludeHauling bool
	Estimate       pricing.Estimate
}

// ListParams filters the quote list.
type ListParams struct {
	Status string
	LeadID *uuid.UUID
	Limit  int
	Offset int
}

// DecisionParams records a customer accept or decline.
type DecisionParams struct {
	ID            uuid.UUID
	Status        string
	SignatureName *string
	DeclineReason *string
	DecidedAt     time.Time
}

// Reader defines read operations for quotes.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Quote, error)
	GetByToken(ctx context.Context, token string) (Quote, error)
	List(ctx context.Context, params ListParams) ([]Quote, int, error)
	CurrentRevision(ctx context.Context, quoteID uuid.UUID) (Revision, error)
	ListRevisions(ctx context.Context, quoteID uuid.UUID) ([]Revision, error)
}

// Writer defines write operations for quotes.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (Quote, Revision, error)
	AddRevision(ctx context.Context, quoteID uuid.UUID, params RevisionParams) (Revision, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (Quote, error)
	RecordDecision(ctx context.Context, params DecisionParams) (Quote, error)
}

// Repository combines read and write operations.
type Repository interface {
	Reader
	Writer
}
