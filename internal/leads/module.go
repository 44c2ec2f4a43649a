// Package leads provides the lead domain module: public intake, scoring,
// and the office follow-up workflow.
package leads

import (
	"clearing_ops_backend/internal/events"
	apphttp "clearing_ops_backend/internal/http"
	"clearing_ops_backend/internal/leads/dedupe"
	"clearing_ops_backend/internal/leads/handler"
	"clearing_ops_backend/internal/leads/repository"
	"clearing_ops_backend/internal/leads/service"
	"clearing_ops_backend/platform/config"
	"clearing_ops_backend/platform/logger"
	"clearing_ops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module represents the leads domain module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
}

// NewModule creates a new leads module with all dependencies wired.
// Without a Redis URL configured, intake runs without deduplication.
func NewModule(pool *pgxpool.Pool, cfg config.DedupeConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)

	var deduper *dedupe.Deduper
	if cfg.GetRedisURL() != "" {
		opts, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Warn("invalid redis URL, intake dedupe disabled", "error", err.Error())
		} else {
			deduper = dedupe.New(redis.NewClient(opts), cfg.GetIntakeDedupeTTL())
		}
	}

	svc := service.New(repo, deduper, bus, log)

	return &Module{
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublicHandler(svc, val),
		service:       svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
	m.publicHandler.RegisterRoutes(ctx.V1.Group("/public/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
