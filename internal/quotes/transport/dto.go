// Package transport defines request/response DTOs for the quotes module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"clearing_ops_backend/internal/pricing"
	"clearing_ops_backend/internal/quotes/repository"
)

// CreateQuoteRequest prices a lead's project and opens a draft quote.
// Customer fields default from the lead when omitted.
type CreateQuoteRequest struct {
	LeadID         uuid.UUID `json:"leadId" validate:"required"`
	ServiceType    string    `json:"serviceType" validate:"required,oneof=forestry-mulching land-clearing"`
	Acreage        float64   `json:"acreage" validate:"required,gt=0"`
	PackageSlug    string    `json:"packageSlug" validate:"max=50"`
	IncludeHauling bool      `json:"includeHauling"`
	CustomerName   string    `json:"customerName" validate:"max=200"`
	CustomerEmail  string    `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone  string    `json:"customerPhone" validate:"max=30"`
	SiteAddress    string    `json:"siteAddress" validate:"max=300"`
}

// RecalculateRequest reprices an open quote, producing a new revision.
type RecalculateRequest struct {
	ServiceType    string  `json:"serviceType" validate:"required,oneof=forestry-mulching land-clearing"`
	Acreage        float64 `json:"acreage" validate:"required,gt=0"`
	PackageSlug    string  `json:"packageSlug" validate:"max=50"`
	IncludeHauling bool    `json:"includeHauling"`
}

// AcceptQuoteRequest records the customer's typed signature.
type AcceptQuoteRequest struct {
	SignatureName string `json:"signatureName" validate:"required,max=200"`
}

// DeclineQuoteRequest records an optional decline reason.
type DeclineQuoteRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// ListQuotesRequest filters the quote list.
type ListQuotesRequest struct {
	Status string     `form:"status" validate:"omitempty,oneof=draft sent accepted declined"`
	LeadID *uuid.UUID `form:"leadId"`
	Limit  int        `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int        `form:"offset" validate:"omitempty,gte=0"`
}

// QuoteResponse pairs a quote with its current pricing revision.
type QuoteResponse struct {
	repository.Quote
	Pricing repository.Revision `json:"pricing"`
}

// ListQuotesResponse is a paginated quote list.
type ListQuotesResponse struct {
	Items []QuoteResponse `json:"items"`
	Total int             `json:"total"`
}

// RevisionsResponse is the full pricing history of a quote.
type RevisionsResponse struct {
	Items []repository.Revision `json:"items"`
}

// PublicQuoteResponse is the customer-facing proposal view. It omits the
// lead linkage and internal workflow fields.
type PublicQuoteResponse struct {
	QuoteNumber  string             `json:"quoteNumber"`
	Status       string             `json:"status"`
	CustomerName string             `json:"customerName"`
	SiteAddress  string             `json:"siteAddress"`
	ServiceType  string             `json:"serviceType"`
	Acreage      float64            `json:"acreage"`
	Breakdown    []pricing.LineItem `json:"breakdown"`
	Total        int64              `json:"total"`
	Deposit      int64              `json:"deposit"`
	SentAt       *time.Time         `json:"sentAt,omitempty"`
}
