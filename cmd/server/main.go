package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/subflow/subflow/internal/api"
	v1 "github.com/subflow/subflow/internal/api/v1"
	"github.com/subflow/subflow/internal/config"
	"github.com/subflow/subflow/internal/domain/proration"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/postgres"
	"github.com/subflow/subflow/internal/repository"
	"github.com/subflow/subflow/internal/service"
	"github.com/subflow/subflow/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewPlanRepository,
			repository.NewSubscriptionRepository,
			repository.NewPaymentRepository,

			// Domain services
			proration.NewCalculator,

			// Services
			service.NewServiceParams,
			service.NewPlanService,
			service.NewBillingService,
			service.NewSubscriptionService,
			service.NewPaymentService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	planService service.PlanService,
	subscriptionService service.SubscriptionService,
	paymentService service.PaymentService,
) api.Handlers {
	return api.Handlers{
		Health:       v1.NewHealthHandler(),
		Plan:         v1.NewPlanHandler(planService, logger),
		Subscription: v1.NewSubscriptionHandler(subscriptionService, logger),
		Payment:      v1.NewPaymentHandler(paymentService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
