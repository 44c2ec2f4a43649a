// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"clearing_ops_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is captured, either through the
// public intake form or by office staff.
type LeadCreated struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Source       string    `json:"source,omitempty"`
	Score        int       `json:"score"`
	Grade        string    `json:"grade"`
	PublicIntake bool      `json:"publicIntake"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published when a lead moves through the follow-up
// workflow (new, contacted, quoted, won, lost).
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	ActorID   uuid.UUID `json:"actorId"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// LeadFollowUpDue is published by the scheduler when a hot lead has not
// been contacted within its follow-up window.
type LeadFollowUpDue struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Name   string    `json:"name,omitempty"`
	Phone  string    `json:"phone,omitempty"`
	Grade  string    `json:"grade"`
}

func (e LeadFollowUpDue) EventName() string { return "leads.followup.due" }

// =============================================================================
// Quotes Domain Events
// =============================================================================

// QuoteSent is published when office staff send a quote to the customer
// via its public link.
type QuoteSent struct {
	BaseEvent
	QuoteID       uuid.UUID `json:"quoteId"`
	LeadID        uuid.UUID `json:"leadId"`
	QuoteNumber   string    `json:"quoteNumber"`
	PublicToken   string    `json:"publicToken"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Total         int64     `json:"total"`
	Deposit       int64     `json:"deposit"`
}

func (e QuoteSent) EventName() string { return "quotes.quote.sent" }

// QuoteAccepted is published when the customer accepts and signs a quote.
type QuoteAccepted struct {
	BaseEvent
	QuoteID       uuid.UUID `json:"quoteId"`
	LeadID        uuid.UUID `json:"leadId"`
	QuoteNumber   string    `json:"quoteNumber"`
	SignatureName string    `json:"signatureName"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Total         int64     `json:"total"`
	Deposit       int64     `json:"deposit"`
}

func (e QuoteAccepted) EventName() string { return "quotes.quote.accepted" }

// QuoteDeclined is published when the customer declines a quote.
type QuoteDeclined struct {
	BaseEvent
	QuoteID      uuid.UUID `json:"quoteId"`
	LeadID       uuid.UUID `json:"leadId"`
	QuoteNumber  string    `json:"quoteNumber"`
	Reason       string    `json:"reason,omitempty"`
	CustomerName string    `json:"customerName"`
}

func (e QuoteDeclined) EventName() string { return "quotes.quote.declined" }

// =============================================================================
// Work Order Domain Events
// =============================================================================

// WorkOrderScheduled is published when a crew is scheduled for a job.
type WorkOrderScheduled struct {
	BaseEvent
	WorkOrderID  uuid.UUID `json:"workOrderId"`
	QuoteID      uuid.UUID `json:"quoteId"`
	CustomerName string    `json:"customerName"`
	SiteAddress  string    `json:"siteAddress"`
	StartDate    time.Time `json:"startDate"`
	CrewLead     string    `json:"crewLead,omitempty"`
}

func (e WorkOrderScheduled) EventName() string { return "workorders.scheduled" }

// WorkOrderCompleted is published when field work wraps up, triggering
// final invoicing.
type WorkOrderCompleted struct {
	BaseEvent
	WorkOrderID uuid.UUID `json:"workOrderId"`
	QuoteID     uuid.UUID `json:"quoteId"`
	CompletedBy uuid.UUID `json:"completedBy"`
}

func (e WorkOrderCompleted) EventName() string { return "workorders.completed" }

// WorkOrderReminderDue is published by the scheduler the day before a
// scheduled start date.
type WorkOrderReminderDue struct {
	BaseEvent
	WorkOrderID  uuid.UUID `json:"workOrderId"`
	CustomerName string    `json:"customerName"`
	SiteAddress  string    `json:"siteAddress"`
	StartDate    time.Time `json:"startDate"`
}

func (e WorkOrderReminderDue) EventName() string { return "workorders.reminder.due" }

// =============================================================================
// Invoice Domain Events
// =============================================================================

// InvoiceIssued is published when an invoice is created and sent.
type InvoiceIssued struct {
	BaseEvent
	InvoiceID     uuid.UUID `json:"invoiceId"`
	QuoteID       uuid.UUID `json:"quoteId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Kind          string    `json:"kind"` // "deposit" or "final"
	Amount        int64     `json:"amount"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
}

func (e InvoiceIssued) EventName() string { return "invoices.issued" }

// InvoicePaid is published when a payment is recorded against an invoice.
type InvoicePaid struct {
	BaseEvent
	InvoiceID     uuid.UUID `json:"invoiceId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Amount        int64     `json:"amount"`
}

func (e InvoicePaid) EventName() string { return "invoices.paid" }
