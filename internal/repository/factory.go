package repository

import (
	"github.com/subflow/subflow/internal/domain/payment"
	"github.com/subflow/subflow/internal/domain/plan"
	"github.com/subflow/subflow/internal/domain/subscription"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/postgres"
	postgresRepo "github.com/subflow/subflow/internal/repository/postgres"
)

func NewPlanRepository(db *postgres.DB, logger *logger.Logger) plan.Repository {
	return postgresRepo.NewPlanRepository(db, logger)
}

func NewSubscriptionRepository(db *postgres.DB, logger *logger.Logger) subscription.Repository {
	return postgresRepo.NewSubscriptionRepository(db, logger)
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}
