package usecase

import (
	"context"

	"go-triagem-backend/internal/domain"
	"go-triagem-backend/pkg/apperror"
)

// Context value lookups work with both gin contexts (which store keys as
// strings via c.Set) and plain context.WithValue using the typed key.

func userIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(string(domain.KeyUserID)).(string); ok && v != "" {
		return v
	}
	if v, ok := ctx.Value(domain.KeyUserID).(string); ok {
		return v
	}
	return ""
}

func roleFrom(ctx context.Context) string {
	if v, ok := ctx.Value(string(domain.KeyUserRole)).(string); ok && v != "" {
		return v
	}
	if v, ok := ctx.Value(domain.KeyUserRole).(string); ok {
		return v
	}
	return ""
}

func requireAdmin(ctx context.Context) error {
	if roleFrom(ctx) != domain.RoleAdmin {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}

func requireAuthenticated(ctx context.Context) (string, error) {
	id := userIDFrom(ctx)
	if id == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return id, nil
}
