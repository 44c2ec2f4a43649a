package scheduler

import (
	"context"
	"fmt"

	"clearing_ops_backend/internal/events"
	leadsrepo "clearing_ops_backend/internal/leads/repository"
	leadsservice "clearing_ops_backend/internal/leads/service"
	workordersrepo "clearing_ops_backend/internal/workorders/repository"
	"clearing_ops_backend/platform/config"
	"clearing_ops_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes delayed tasks and turns the ones that are still
// relevant into domain events.
type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	leads      *leadsservice.Service
	workOrders *workordersrepo.Repo
	bus        events.Bus
	log        *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:     server,
		mux:        mux,
		leads:      leadsservice.New(leadsrepo.New(pool), nil, bus, log),
		workOrders: workordersrepo.New(pool),
		bus:        bus,
		log:        log,
	}

	mux.HandleFunc(TaskLeadFollowUp, w.handleLeadFollowUp)
	mux.HandleFunc(TaskWorkOrderReminder, w.handleWorkOrderReminder)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleLeadFollowUp fires only for leads nobody has touched since the
// task was enqueued. Contacted, quoted, and closed leads stay quiet.
func (w *Worker) handleLeadFollowUp(ctx context.Context, task *asynq.Task) error {
	if w.bus == nil {
		return nil
	}

	payload, err := ParseLeadFollowUpPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	lead, err := w.leads.Get(ctx, leadID)
	if err != nil {
		return err
	}

	if lead.Status != leadsrepo.StatusNew {
		return nil
	}

	w.bus.Publish(ctx, events.LeadFollowUpDue{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      optionalString(lead.Name),
		Phone:     optionalString(lead.Phone),
		Grade:     string(lead.Score.Grade),
	})

	return nil
}

// handleWorkOrderReminder fires only while the job is still on the
// schedule. Started and cancelled work orders need no reminder.
func (w *Worker) handleWorkOrderReminder(ctx context.Context, task *asynq.Task) error {
	if w.bus == nil {
		return nil
	}

	payload, err := ParseWorkOrderReminderPayload(task)
	if err != nil {
		return err
	}

	workOrderID, err := uuid.Parse(payload.WorkOrderID)
	if err != nil {
		return err
	}

	order, err := w.workOrders.GetByID(ctx, workOrderID)
	if err != nil {
		return err
	}

	if order.Status != workordersrepo.StatusScheduled {
		return nil
	}

	w.bus.Publish(ctx, events.WorkOrderReminderDue{
		BaseEvent:    events.NewBaseEvent(),
		WorkOrderID:  order.ID,
		CustomerName: order.CustomerName,
		SiteAddress:  order.SiteAddress,
		StartDate:    order.ScheduledStart,
	})

	return nil
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
