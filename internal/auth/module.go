// Package auth provides staff authentication: bcrypt credentials, JWT
// access/refresh tokens, and user administration.
package auth

import (
	"context"

	"clearing_ops_backend/internal/auth/handler"
	"clearing_ops_backend/internal/auth/repository"
	"clearing_ops_backend/internal/auth/service"
	apphttp "clearing_ops_backend/internal/http"
	"clearing_ops_backend/platform/config"
	"clearing_ops_backend/platform/logger"
	"clearing_ops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the auth domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new auth module and bootstraps the first admin
// account when configured.
func NewModule(ctx context.Context, pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) (*Module, error) {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)

	if err := svc.Bootstrap(ctx); err != nil {
		return nil, err
	}

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes. Login and refresh sit
// behind the stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/auth")
	public.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterPublicRoutes(public)

	m.handler.RegisterProtectedRoutes(ctx.Protected.Group("/auth"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/users"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
