// Package timesheets provides crew time tracking against work orders.
package timesheets

import (
	apphttp "clearing_ops_backend/internal/http"
	"clearing_ops_backend/internal/timesheets/handler"
	"clearing_ops_backend/internal/timesheets/repository"
	"clearing_ops_backend/internal/timesheets/service"
	"clearing_ops_backend/platform/logger"
	"clearing_ops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the timesheets domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new timesheets module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, workOrders service.WorkOrderSource, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, workOrders, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "timesheets"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/timesheets"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
