package service

import (
	"context"

	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/types"
)

// requireAdmin rejects the call before any storage side effect when the
// caller does not hold the admin capability.
func requireAdmin(ctx context.Context) error {
	if !types.IsAdmin(ctx) {
		return ierr.NewError("admin capability required").
			WithHint("You do not have permission to manage plans").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}

// resolveSubscriberID picks the acting subscriber: the explicit override (a
// team id in team-scoped deployments, verified by the auth collaborator) when
// present, otherwise the authenticated user.
func resolveSubscriberID(ctx context.Context, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if userID := types.GetUserID(ctx); userID != "" {
		return userID, nil
	}
	return "", ierr.NewError("missing subscriber identity").
		WithHint("Authentication is required for subscription operations").
		Mark(ierr.ErrUnauthorized)
}
