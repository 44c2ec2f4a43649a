// Package quotes provides the proposal domain module: revisioned pricing,
// the send/accept/decline workflow, and the public proposal link.
package quotes

import (
	"clearing_ops_backend/internal/events"
	apphttp "clearing_ops_backend/internal/http"
	"clearing_ops_backend/internal/quotes/handler"
	"clearing_ops_backend/internal/quotes/repository"
	"clearing_ops_backend/internal/quotes/service"
	"clearing_ops_backend/platform/config"
	"clearing_ops_backend/platform/logger"
	"clearing_ops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the quotes domain module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
}

// NewModule creates a new quotes module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg config.NotificationConfig, rates service.RateTableLoader, leads service.LeadSource, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, rates, leads, bus, cfg.GetAppBaseURL(), log)

	return &Module{
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublicHandler(svc, val),
		service:       svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/quotes"))
	m.publicHandler.RegisterRoutes(ctx.V1.Group("/public/quotes"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
