package testutil

import (
	"context"

	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/postgres"
)

var _ postgres.IClient = (*MockDB)(nil)

// MockDB is a no-op transaction client for service tests backed by in-memory
// stores: the function runs without a real transaction, store writes apply
// immediately.
type MockDB struct {
	logger *logger.Logger
}

func NewMockDB(logger *logger.Logger) postgres.IClient {
	return &MockDB{logger: logger}
}

func (c *MockDB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
