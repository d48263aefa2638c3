package usecase

import (
	"context"

	"pathbridge-backend/internal/domain"
)

// Caller identity is threaded explicitly through the context under typed
// keys set by the auth middleware. An empty id means anonymous.

func callerID(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyUserID).(string)
	return id
}

func callerRole(ctx context.Context) string {
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	return role
}

func callerInstitution(ctx context.Context) string {
	inst, _ := ctx.Value(domain.KeyUserInstitution).(string)
	return inst
}
