package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/subflow/subflow/internal/api/v1"
	"github.com/subflow/subflow/internal/config"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/rest/middleware"
)

type Handlers struct {
	Health       *v1.HealthHandler
	Plan         *v1.PlanHandler
	Subscription *v1.SubscriptionHandler
	Payment      *v1.PaymentHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")

	// Public routes: the plan catalog is readable without authentication
	public := v1Group.Group("")
	{
		public.GET("/plans", handlers.Plan.ListPlans)
		public.GET("/plans/:id", handlers.Plan.GetPlan)
	}

	// Authenticated routes. Admin capability checks for plan mutations and
	// payment recording happen in the service layer before any side effect.
	private := v1Group.Group("")
	private.Use(middleware.AuthenticateMiddleware(cfg, logger))
	{
		private.POST("/plans", handlers.Plan.CreatePlan)
		private.PUT("/plans/:id", handlers.Plan.UpdatePlan)

		private.POST("/subscriptions", handlers.Subscription.Subscribe)
		private.POST("/subscriptions/quote", handlers.Subscription.QuoteUpgrade)
		private.GET("/subscriptions/current", handlers.Subscription.GetActiveSubscription)

		private.POST("/payments", handlers.Payment.RecordPayment)
	}

	return router
}
