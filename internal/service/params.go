package service

import (
	"github.com/subflow/subflow/internal/config"
	"github.com/subflow/subflow/internal/domain/payment"
	"github.com/subflow/subflow/internal/domain/plan"
	"github.com/subflow/subflow/internal/domain/proration"
	"github.com/subflow/subflow/internal/domain/subscription"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	PlanRepo    plan.Repository
	SubRepo     subscription.Repository
	PaymentRepo payment.Repository

	// Domain services
	ProrationCalculator proration.Calculator
}

// NewServiceParams assembles the service dependency bundle
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db *postgres.DB,
	planRepo plan.Repository,
	subRepo subscription.Repository,
	paymentRepo payment.Repository,
	prorationCalculator proration.Calculator,
) ServiceParams {
	return ServiceParams{
		Logger:              logger,
		Config:              config,
		DB:                  db,
		PlanRepo:            planRepo,
		SubRepo:             subRepo,
		PaymentRepo:         paymentRepo,
		ProrationCalculator: prorationCalculator,
	}
}
