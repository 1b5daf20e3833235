package testutil

import (
	"context"

	"github.com/subflow/subflow/internal/types"
)

const (
	DefaultUserID  = "user_test"
	DefaultAdminID = "user_admin"
)

// SetupContext returns a context authenticated as a regular user
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxIsAdmin, false)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// SetupAdminContext returns a context carrying the admin capability
func SetupAdminContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, DefaultAdminID)
	ctx = context.WithValue(ctx, types.CtxIsAdmin, true)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
