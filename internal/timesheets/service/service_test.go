package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"clearing_ops_backend/internal/timesheets/repository"
	"clearing_ops_backend/internal/timesheets/transport"
	workordersrepo "clearing_ops_backend/internal/workorders/repository"
	"clearing_ops_backend/platform/apperr"
)

type staticOrders struct {
	orders map[uuid.UUID]workordersrepo.WorkOrder
}

func (s staticOrders) Get(_ context.Context, id uuid.UUID) (workordersrepo.WorkOrder, error) {
	order, ok := s.orders[id]
	if !ok {
		return workordersrepo.WorkOrder{}, apperr.NotFound("work order not found")
	}
	return order, nil
}

type fakeEntries struct {
	open    []repository.Entry
	created []repository.CreateParams
}

func (f *fakeEntries) GetByID(context.Context, uuid.UUID) (repository.Entry, error) {
	return repository.Entry{}, apperr.NotFound("time entry not found")
}

func (f *fakeEntries) GetOpenEntry(_ context.Context, workOrderID, userID uuid.UUID) (repository.Entry, error) {
	for _, e := range f.open {
		if e.WorkOrderID == workOrderID && e.UserID == userID {
			return e, nil
		}
	}
	return repository.Entry{}, apperr.NotFound("no open time entry")
}

func (f *fakeEntries) GetOpenEntryByUser(_ context.Context, userID uuid.UUID) (repository.Entry, error) {
	for _, e := range f.open {
		if e.UserID == userID {
			return e, nil
		}
	}
	return repository.Entry{}, apperr.NotFound("no open time entry")
}

func (f *fakeEntries) ListByWorkOrder(context.Context, uuid.UUID) ([]repository.Entry, error) {
	return nil, nil
}

func (f *fakeEntries) HoursByWorkOrder(context.Context, uuid.UUID) ([]repository.MemberHours, error) {
	return nil, nil
}

func (f *fakeEntries) Create(_ context.Context, params repository.CreateParams) (repository.Entry, error) {
	f.created = append(f.created, params)
	return repository.Entry{
		ID:          uuid.New(),
		WorkOrderID: params.WorkOrderID,
		UserID:      params.UserID,
		ClockIn:     params.ClockIn,
	}, nil
}

func (f *fakeEntries) Close(context.Context, uuid.UUID, time.Time, *string) (repository.Entry, error) {
	return repository.Entry{}, nil
}

func (f *fakeEntries) Delete(context.Context, uuid.UUID) error {
	return nil
}

func newClockInService(repo repository.Repository, orders staticOrders) *Service {
	return &Service{
		repo:       repo,
		workOrders: orders,
		now:        time.Now,
	}
}

func TestClockInRejectsOpenEntryOnAnotherWorkOrder(t *testing.T) {
	userID := uuid.New()
	orderA := uuid.New()
	orderB := uuid.New()

	repo := &fakeEntries{open: []repository.Entry{
		{ID: uuid.New(), WorkOrderID: orderA, UserID: userID},
	}}
	orders := staticOrders{orders: map[uuid.UUID]workordersrepo.WorkOrder{
		orderB: {ID: orderB, Status: workordersrepo.StatusInProgress},
	}}

	svc := newClockInService(repo, orders)

	_, err := svc.ClockIn(context.Background(), userID, transport.ClockInRequest{WorkOrderID: orderB})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("expected no entry created, got %d", len(repo.created))
	}
}

func TestClockInRejectsSecondEntryOnSameWorkOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	repo := &fakeEntries{open: []repository.Entry{
		{ID: uuid.New(), WorkOrderID: orderID, UserID: userID},
	}}
	orders := staticOrders{orders: map[uuid.UUID]workordersrepo.WorkOrder{
		orderID: {ID: orderID, Status: workordersrepo.StatusInProgress},
	}}

	svc := newClockInService(repo, orders)

	_, err := svc.ClockIn(context.Background(), userID, transport.ClockInRequest{WorkOrderID: orderID})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestClockInRequiresInProgressWorkOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	repo := &fakeEntries{}
	orders := staticOrders{orders: map[uuid.UUID]workordersrepo.WorkOrder{
		orderID: {ID: orderID, Status: workordersrepo.StatusScheduled},
	}}

	svc := newClockInService(repo, orders)

	_, err := svc.ClockIn(context.Background(), userID, transport.ClockInRequest{WorkOrderID: orderID})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestClockInOpensEntry(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	repo := &fakeEntries{}
	orders := staticOrders{orders: map[uuid.UUID]workordersrepo.WorkOrder{
		orderID: {ID: orderID, Status: workordersrepo.StatusInProgress},
	}}

	svc := newClockInService(repo, orders)

	entry, err := svc.ClockIn(context.Background(), userID, transport.ClockInRequest{WorkOrderID: orderID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.WorkOrderID != orderID || entry.UserID != userID {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 entry created, got %d", len(repo.created))
	}
}
