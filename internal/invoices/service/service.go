// Package service implements invoicing: the deposit invoice cut on quote
// acceptance and the final invoice reconciling the completed job.
package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"clearing_ops_backend/internal/events"
	"clearing_ops_backend/internal/invoices/repository"
	"clearing_ops_backend/internal/invoices/transport"
	"clearing_ops_backend/internal/pricing"
	quotesrepo "clearing_ops_backend/internal/quotes/repository"
	quotestransport "clearing_ops_backend/internal/quotes/transport"
	workordersrepo "clearing_ops_backend/internal/workorders/repository"
	"clearing_ops_backend/platform/apperr"
	"clearing_ops_backend/platform/logger"
)

// crewDayHours prorates the equipment day rate when billing overrun hours.
const crewDayHours = 8.0

// QuoteSource provides quote details from the quotes module.
type QuoteSource interface {
	Get(ctx context.Context, id uuid.UUID) (quotestransport.QuoteResponse, error)
}

// WorkOrderSource provides work order state from the work orders module.
type WorkOrderSource interface {
	Get(ctx context.Context, id uuid.UUID) (workordersrepo.WorkOrder, error)
}

// HoursSource provides billable hours from the timesheets module.
type HoursSource interface {
	BillableHours(ctx context.Context, workOrderID uuid.UUID) (float64, error)
}

// RateTableLoader supplies the current rate card.
type RateTableLoader interface {
	LoadRateTable(ctx context.Context) (pricing.RateTable, error)
}

// Service coordinates invoicing operations.
type Service struct {
	repo       repository.Repository
	quotes     QuoteSource
	workOrders WorkOrderSource
	hours      HoursSource
	rates      RateTableLoader
	bus        events.Bus
	log        *logger.Logger
	now        func() time.Time
}

// New creates a new invoices service.
func New(repo repository.Repository, quotes QuoteSource, workOrders WorkOrderSource, hours HoursSource, rates RateTableLoader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		quotes:     quotes,
		workOrders: workOrders,
		hours:      hours,
		rates:      rates,
		bus:        bus,
		log:        log,
		now:        time.Now,
	}
}

// RegisterEventHandlers cuts the deposit invoice whenever a quote is
// accepted, whether from the public link or the office.
func (s *Service) RegisterEventHandlers(bus events.Bus) {
	bus.Subscribe(events.QuoteAccepted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		accepted, ok := event.(events.QuoteAccepted)
		if !ok {
			return nil
		}
		_, err := s.IssueDeposit(ctx, accepted.QuoteID)
		if apperr.GetKind(err) == apperr.KindConflict {
			return nil
		}
		return err
	}))
}

// IssueDeposit cuts the deposit invoice for an accepted quote. Each quote
// gets at most one live deposit invoice.
func (s *Service) IssueDeposit(ctx context.Context, quoteID uuid.UUID) (repository.Invoice, error) {
	quote, err := s.quotes.Get(ctx, quoteID)
	if err != nil {
		return repository.Invoice{}, err
	}
	if quote.Status != quotesrepo.StatusAccepted {
		return repository.Invoice{}, apperr.Conflict("quote is not accepted")
	}

	if err := s.ensureNoLive(ctx, quoteID, repository.KindDeposit); err != nil {
		return repository.Invoice{}, err
	}

	invoice, err := s.repo.Create(ctx, repository.CreateParams{
		QuoteID:  quoteID,
		Kind:     repository.KindDeposit,
		Amount:   quote.Pricing.Deposit,
		IssuedAt: s.now().UTC(),
	})
	if err != nil {
		return repository.Invoice{}, err
	}

	s.publishIssued(ctx, invoice, quote)
	return invoice, nil
}

// IssueFinal cuts the final invoice for a completed work order: the quote
// total less deposits already paid, plus overrun hours billed at the
// prorated equipment day rate.
func (s *Service) IssueFinal(ctx context.Context, req transport.IssueFinalRequest) (repository.Invoice, error) {
	order, err := s.workOrders.Get(ctx, req.WorkOrderID)
	if err != nil {
		return repository.Invoice{}, err
	}
	if order.Status != workordersrepo.StatusCompleted {
		return repository.Invoice{}, apperr.Conflict("work order is not completed")
	}

	quote, err := s.quotes.Get(ctx, order.QuoteID)
	if err != nil {
		return repository.Invoice{}, err
	}

	if err := s.ensureNoLive(ctx, order.QuoteID, repository.KindFinal); err != nil {
		return repository.Invoice{}, err
	}

	depositPaid, err := s.repo.SumPaidDeposits(ctx, order.QuoteID)
	if err != nil {
		return repository.Invoice{}, err
	}

	billable, err := s.hours.BillableHours(ctx, order.ID)
	if err != nil {
		return repository.Invoice{}, err
	}

	table, err := s.rates.LoadRateTable(ctx)
	if err != nil {
		return repository.Invoice{}, err
	}

	var estimated float64
	if order.EstimatedHours != nil {
		estimated = *order.EstimatedHours
	}

	amount := finalAmount(quote.Pricing.Total, depositPaid, billable, estimated, table.Clearing.EquipmentDayRate)

	invoice, err := s.repo.Create(ctx, repository.CreateParams{
		QuoteID:     order.QuoteID,
		WorkOrderID: &order.ID,
		Kind:        repository.KindFinal,
		Amount:      amount,
		IssuedAt:    s.now().UTC(),
	})
	if err != nil {
		return repository.Invoice{}, err
	}

	s.publishIssued(ctx, invoice, quote)
	return invoice, nil
}

// Get returns an invoice.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns invoices, newest first.
func (s *Service) List(ctx context.Context, req transport.ListInvoicesRequest) (transport.ListInvoicesResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	invoices, total, err := s.repo.List(ctx, repository.ListParams{
		Status:  req.Status,
		Kind:    req.Kind,
		QuoteID: req.QuoteID,
		Limit:   limit,
		Offset:  req.Offset,
	})
	if err != nil {
		return transport.ListInvoicesResponse{}, err
	}

	return transport.ListInvoicesResponse{Items: invoices, Total: total}, nil
}

// RecordPayment marks an issued invoice paid.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID) (repository.Invoice, error) {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Invoice{}, err
	}
	if invoice.Status != repository.StatusIssued {
		return repository.Invoice{}, apperr.Conflict("invoice is already " + invoice.Status)
	}

	paid, err := s.repo.MarkPaid(ctx, id, s.now().UTC())
	if err != nil {
		return repository.Invoice{}, err
	}

	s.bus.Publish(ctx, events.InvoicePaid{
		BaseEvent:     events.NewBaseEvent(),
		InvoiceID:     paid.ID,
		InvoiceNumber: paid.InvoiceNumber,
		Amount:        paid.Amount,
	})

	return paid, nil
}

// Void cancels an issued invoice.
func (s *Service) Void(ctx context.Context, id uuid.UUID) (repository.Invoice, error) {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Invoice{}, err
	}
	if invoice.Status != repository.StatusIssued {
		return repository.Invoice{}, apperr.Conflict("invoice is already " + invoice.Status)
	}

	return s.repo.MarkVoid(ctx, id)
}

// ensureNoLive rejects a second live invoice of the same kind on a quote.
// Voided invoices do not block reissue.
func (s *Service) ensureNoLive(ctx context.Context, quoteID uuid.UUID, kind string) error {
	existing, err := s.repo.ListByQuote(ctx, quoteID)
	if err != nil {
		return err
	}
	for _, invoice := range existing {
		if invoice.Kind == kind && invoice.Status != repository.StatusVoid {
			return apperr.Conflict("quote already has a " + kind + " invoice")
		}
	}
	return nil
}

func (s *Service) publishIssued(ctx context.Context, invoice repository.Invoice, quote quotestransport.QuoteResponse) {
	s.bus.Publish(ctx, events.InvoiceIssued{
		BaseEvent:     events.NewBaseEvent(),
		InvoiceID:     invoice.ID,
		QuoteID:       invoice.QuoteID,
		InvoiceNumber: invoice.InvoiceNumber,
		Kind:          invoice.Kind,
		Amount:        invoice.Amount,
		CustomerName:  quote.CustomerName,
		CustomerEmail: quote.CustomerEmail,
	})
}

// finalAmount reconciles the final bill: quoted total less deposits paid,
// plus overrun hours at the prorated equipment day rate.
func finalAmount(total, depositPaid int64, billableHours, estimatedHours float64, equipmentDayRate int64) int64 {
	amount := total - depositPaid

	extra := billableHours - estimatedHours
	if estimatedHours > 0 && extra > 0 {
		amount += int64(math.Round(extra * float64(equipmentDayRate) / crewDayHours))
	}

	if amount < 0 {
		amount = 0
	}
	return amount
}
