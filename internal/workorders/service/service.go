// Package service implements work order scheduling: crew assignment, the
// job status workflow, and day-before reminders.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clearing_ops_backend/internal/events"
	quotesrepo "clearing_ops_backend/internal/quotes/repository"
	quotestransport "clearing_ops_backend/internal/quotes/transport"
	"clearing_ops_backend/internal/workorders/repository"
	"clearing_ops_backend/internal/workorders/transport"
	"clearing_ops_backend/platform/apperr"
	"clearing_ops_backend/platform/logger"
)

// reminderLeadTime is how far ahead of the scheduled start the crew
// reminder fires.
const reminderLeadTime = 24 * time.Hour

// crewDayHours converts estimated equipment days into crew hours.
const crewDayHours = 8.0

// QuoteSource provides quote details from the quotes module.
type QuoteSource interface {
	Get(ctx context.Context, id uuid.UUID) (quotestransport.QuoteResponse, error)
}

// ReminderScheduler enqueues a delayed day-before reminder.
type ReminderScheduler interface {
	ScheduleWorkOrderReminder(ctx context.Context, workOrderID uuid.UUID, delay time.Duration) error
}

// Service coordinates work order operations.
type Service struct {
	repo      repository.Repository
	quotes    QuoteSource
	bus       events.Bus
	scheduler ReminderScheduler
	log       *logger.Logger
	now       func() time.Time
}

// New creates a new work orders service. The scheduler is optional;
// without it no reminders are enqueued.
func New(repo repository.Repository, quotes QuoteSource, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		quotes: quotes,
		bus:    bus,
		log:    log,
		now:    time.Now,
	}
}

// SetReminderScheduler wires the delayed reminder queue.
func (s *Service) SetReminderScheduler(scheduler ReminderScheduler) {
	s.scheduler = scheduler
}

// Create schedules a job for an accepted quote. Customer and site come
// from the quote; the hours estimate defaults from the quoted equipment
// days when not given.
func (s *Service) Create(ctx context.Context, req transport.CreateWorkOrderRequest) (repository.WorkOrder, error) {
	quote, err := s.quotes.Get(ctx, req.QuoteID)
	if err != nil {
		return repository.WorkOrder{}, err
	}
	if quote.Status != quotesrepo.StatusAccepted {
		return repository.WorkOrder{}, apperr.Conflict("quote must be accepted before scheduling")
	}

	estimatedHours := req.EstimatedHours
	if estimatedHours == nil {
		estimatedHours = estimateFromBreakdown(quote)
	}

	order, err := s.repo.Create(ctx, repository.CreateParams{
		QuoteID:        req.QuoteID,
		CustomerName:   quote.CustomerName,
		SiteAddress:    quote.SiteAddress,
		CrewLead:       req.CrewLead,
		Crew:           req.Crew,
		Equipment:      req.Equipment,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		EstimatedHours: estimatedHours,
		Notes:          req.Notes,
	})
	if err != nil {
		return repository.WorkOrder{}, err
	}

	s.bus.Publish(ctx, events.WorkOrderScheduled{
		BaseEvent:    events.NewBaseEvent(),
		WorkOrderID:  order.ID,
		QuoteID:      order.QuoteID,
		CustomerName: order.CustomerName,
		SiteAddress:  order.SiteAddress,
		StartDate:    order.ScheduledStart,
		CrewLead:     order.CrewLead,
	})
	s.scheduleReminder(ctx, order)

	return order, nil
}

// Get returns a work order.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.WorkOrder, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByQuote returns the work order scheduled for a quote.
func (s *Service) GetByQuote(ctx context.Context, quoteID uuid.UUID) (repository.WorkOrder, error) {
	return s.repo.GetByQuoteID(ctx, quoteID)
}

// List returns work orders, soonest first.
func (s *Service) List(ctx context.Context, req transport.ListWorkOrdersRequest) (transport.ListWorkOrdersResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	orders, total, err := s.repo.List(ctx, repository.ListParams{
		Status: req.Status,
		From:   req.From,
		To:     req.To,
		Limit:  limit,
		Offset: req.Offset,
	})
	if err != nil {
		return transport.ListWorkOrdersResponse{}, err
	}

	return transport.ListWorkOrdersResponse{Items: orders, Total: total}, nil
}

// Update reschedules or restaffs a work order. Closed work orders are
// immutable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateWorkOrderRequest) (repository.WorkOrder, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.WorkOrder{}, err
	}
	if closed(order.Status) {
		return repository.WorkOrder{}, apperr.Conflict("work order is already " + order.Status)
	}

	updated, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:             id,
		CrewLead:       req.CrewLead,
		Crew:           req.Crew,
		Equipment:      req.Equipment,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		EstimatedHours: req.EstimatedHours,
		Notes:          req.Notes,
	})
	if err != nil {
		return repository.WorkOrder{}, err
	}

	if req.ScheduledStart != nil {
		s.scheduleReminder(ctx, updated)
	}

	return updated, nil
}

// Start moves a scheduled work order to in_progress.
func (s *Service) Start(ctx context.Context, id uuid.UUID) (repository.WorkOrder, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.WorkOrder{}, err
	}
	if order.Status != repository.StatusScheduled {
		return repository.WorkOrder{}, apperr.Conflict("work order cannot start from " + order.Status)
	}

	return s.repo.MarkStarted(ctx, id, s.now().UTC())
}

// Complete closes an in-progress work order and publishes the event that
// drives final invoicing.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, completedBy uuid.UUID) (repository.WorkOrder, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.WorkOrder{}, err
	}
	if order.Status != repository.StatusInProgress {
		return repository.WorkOrder{}, apperr.Conflict("work order cannot complete from " + order.Status)
	}

	updated, err := s.repo.MarkCompleted(ctx, id, s.now().UTC(), completedBy)
	if err != nil {
		return repository.WorkOrder{}, err
	}

	s.bus.Publish(ctx, events.WorkOrderCompleted{
		BaseEvent:   events.NewBaseEvent(),
		WorkOrderID: updated.ID,
		QuoteID:     updated.QuoteID,
		CompletedBy: completedBy,
	})

	return updated, nil
}

// Cancel closes a work order without completing it.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req transport.CancelWorkOrderRequest) (repository.WorkOrder, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.WorkOrder{}, err
	}
	if closed(order.Status) {
		return repository.WorkOrder{}, apperr.Conflict("work order is already " + order.Status)
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}

	return s.repo.MarkCancelled(ctx, id, reason)
}

// scheduleReminder enqueues the day-before crew reminder when the start
// is far enough out.
func (s *Service) scheduleReminder(ctx context.Context, order repository.WorkOrder) {
	if s.scheduler == nil {
		return
	}

	delay := order.ScheduledStart.Add(-reminderLeadTime).Sub(s.now())
	if delay <= 0 {
		return
	}

	if err := s.scheduler.ScheduleWorkOrderReminder(ctx, order.ID, delay); err != nil {
		s.log.Warn("failed to schedule work order reminder", "workOrderId", order.ID, "error", err.Error())
	}
}

// estimateFromBreakdown derives a crew-hours estimate from the quoted
// equipment days, when the breakdown carries one.
func estimateFromBreakdown(quote quotestransport.QuoteResponse) *float64 {
	for _, line := range quote.Pricing.Breakdown {
		if line.Unit == "days" {
			hours := line.Quantity * crewDayHours
			return &hours
		}
	}
	return nil
}

func closed(status string) bool {
	return status == repository.StatusCompleted || status == repository.StatusCancelled
}
