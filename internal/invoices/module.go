// Package invoices provides the billing domain module: deposit invoices
// on quote acceptance and final invoices reconciling completed jobs.
package invoices

import (
	"clearing_ops_backend/internal/events"
	apphttp "clearing_ops_backend/internal/http"
	"clearing_ops_backend/internal/invoices/handler"
	"clearing_ops_backend/internal/invoices/repository"
	"clearing_ops_backend/internal/invoices/service"
	"clearing_ops_backend/platform/logger"
	"clearing_ops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the invoices domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new invoices module with all dependencies wired and
// subscribes the deposit-on-acceptance handler.
func NewModule(pool *pgxpool.Pool, quotes service.QuoteSource, workOrders service.WorkOrderSource, hours service.HoursSource, rates service.RateTableLoader, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, quotes, workOrders, hours, rates, bus, log)
	svc.RegisterEventHandlers(bus)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "invoices"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/invoices"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
