// Package catalog provides the rate card domain module: forestry mulching
// package tiers and the land clearing and deposit rate settings.
package catalog

import (
	"context"

	"clearing_ops_backend/internal/catalog/handler"
	"clearing_ops_backend/internal/catalog/repository"
	"clearing_ops_backend/internal/catalog/service"
	apphttp "clearing_ops_backend/internal/http"
	"clearing_ops_backend/platform/config"
	"clearing_ops_backend/platform/logger"
	"clearing_ops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the catalog domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new catalog module with all dependencies wired and
// seeds the rate card on first boot.
func NewModule(ctx context.Context, pool *pgxpool.Pool, cfg config.CatalogConfig, val *validator.Validator, log *logger.Logger) (*Module, error) {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	if err := svc.Seed(ctx, cfg.GetRateSeedFile()); err != nil {
		return nil, err
	}

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/catalog"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/catalog"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
