// Package service implements crew time tracking against work orders.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clearing_ops_backend/internal/timesheets/repository"
	"clearing_ops_backend/internal/timesheets/transport"
	workordersrepo "clearing_ops_backend/internal/workorders/repository"
	"clearing_ops_backend/platform/apperr"
	"clearing_ops_backend/platform/logger"
)

// WorkOrderSource provides work order state from the work orders module.
type WorkOrderSource interface {
	Get(ctx context.Context, id uuid.UUID) (workordersrepo.WorkOrder, error)
}

// Service coordinates time tracking operations.
type Service struct {
	repo       repository.Repository
	workOrders WorkOrderSource
	log        *logger.Logger
	now        func() time.Time
}

// New creates a new timesheets service.
func New(repo repository.Repository, workOrders WorkOrderSource, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		workOrders: workOrders,
		log:        log,
		now:        time.Now,
	}
}

// ClockIn opens a time entry for the caller on an in-progress work order.
// A crew member holds at most one open entry across all work orders; the
// current job must be clocked out before the next one starts.
func (s *Service) ClockIn(ctx context.Context, userID uuid.UUID, req transport.ClockInRequest) (repository.Entry, error) {
	order, err := s.workOrders.Get(ctx, req.WorkOrderID)
	if err != nil {
		return repository.Entry{}, err
	}
	if order.Status != workordersrepo.StatusInProgress {
		return repository.Entry{}, apperr.Conflict("work order is not in progress")
	}

	if open, err := s.repo.GetOpenEntryByUser(ctx, userID); err == nil {
		if open.WorkOrderID == req.WorkOrderID {
			return repository.Entry{}, apperr.Conflict("already clocked in on this work order")
		}
		return repository.Entry{}, apperr.Conflict("already clocked in on another work order")
	} else if apperr.GetKind(err) != apperr.KindNotFound {
		return repository.Entry{}, err
	}

	return s.repo.Create(ctx, repository.CreateParams{
		WorkOrderID: req.WorkOrderID,
		UserID:      userID,
		ClockIn:     s.now().UTC(),
		Notes:       req.Notes,
	})
}

// ClockOut closes the caller's open entry on a work order.
func (s *Service) ClockOut(ctx context.Context, userID uuid.UUID, req transport.ClockOutRequest) (repository.Entry, error) {
	entry, err := s.repo.GetOpenEntry(ctx, req.WorkOrderID, userID)
	if err != nil {
		return repository.Entry{}, err
	}

	return s.repo.Close(ctx, entry.ID, s.now().UTC(), req.Notes)
}

// WorkOrderTimesheet returns the entries and billable-hours summary for a
// work order.
func (s *Service) WorkOrderTimesheet(ctx context.Context, workOrderID uuid.UUID) (transport.WorkOrderTimesheetResponse, error) {
	if _, err := s.workOrders.Get(ctx, workOrderID); err != nil {
		return transport.WorkOrderTimesheetResponse{}, err
	}

	entries, err := s.repo.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		return transport.WorkOrderTimesheetResponse{}, err
	}

	members, err := s.repo.HoursByWorkOrder(ctx, workOrderID)
	if err != nil {
		return transport.WorkOrderTimesheetResponse{}, err
	}

	var total float64
	for _, m := range members {
		total += m.Hours
	}

	return transport.WorkOrderTimesheetResponse{
		Entries:    entries,
		Members:    members,
		TotalHours: total,
	}, nil
}

// BillableHours sums closed entries on a work order. Used when the final
// invoice reconciles actual time against the estimate.
func (s *Service) BillableHours(ctx context.Context, workOrderID uuid.UUID) (float64, error) {
	members, err := s.repo.HoursByWorkOrder(ctx, workOrderID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, m := range members {
		total += m.Hours
	}
	return total, nil
}

// DeleteEntry removes a mistaken time entry.
func (s *Service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
