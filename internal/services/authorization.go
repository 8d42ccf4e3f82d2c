package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/internal/authz"
	apperrors "github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/metrics"
)

// authorize resolves the caller and evaluates the ownership rule. A missing
// principal is reported as unauthenticated, a failed decision as forbidden.
func authorize(ctx context.Context, principals PrincipalResolver, log *zap.Logger, resource authz.Resource, op authz.Operation) error {
	principal, ok := principals.Principal(ctx)
	if !ok {
		return apperrors.ErrUnauthorized
	}

	decision := authz.Authorize(principal, resource, op)
	metrics.AuthorizationDecisions.WithLabelValues(string(op), decision.String()).Inc()
	if !decision.Succeeded() {
		fields := []zap.Field{
			zap.Int("principal_id", principal.ID()),
			zap.String("operation", string(op)),
		}
		if resource != nil {
			fields = append(fields, zap.Int("owner_id", resource.OwnerID()))
		}
		log.Info("authorization denied", fields...)
		return apperrors.ErrForbidden
	}
	return nil
}
