// Package workorders provides the scheduling domain module: crew and
// equipment assignment for accepted quotes and the job status workflow.
package workorders

import (
	"clearing_ops_backend/internal/events"
	apphttp "clearing_ops_backend/internal/http"
	"clearing_ops_backend/internal/workorders/handler"
	"clearing_ops_backend/internal/workorders/repository"
	"clearing_ops_backend/internal/workorders/service"
	"clearing_ops_backend/platform/logger"
	"clearing_ops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the work orders domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new work orders module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, quotes service.QuoteSource, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, quotes, bus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "workorders"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/workorders"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
