package auth

import (
	"context"

	"github.com/charlesng35/restaurants/internal/authz"
)

// Claim names exposed on principals built from tokens.
const (
	ClaimName        = "name"
	ClaimNationality = "nationality"
	ClaimDateOfBirth = "date_of_birth"
)

type principalKey struct{}

// PrincipalFromClaims converts validated token claims into a principal.
func PrincipalFromClaims(claims *Claims) authz.Principal {
	if claims == nil {
		return authz.Principal{}
	}

	var roles []string
	if claims.Role != "" {
		roles = []string{claims.Role}
	}

	attrs := map[string]string{}
	if claims.Name != "" {
		attrs[ClaimName] = claims.Name
	}
	if claims.Nationality != "" {
		attrs[ClaimNationality] = claims.Nationality
	}
	if claims.DateOfBirth != "" {
		attrs[ClaimDateOfBirth] = claims.DateOfBirth
	}

	return authz.NewPrincipal(claims.UserID, roles, attrs)
}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, principal authz.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFromContext extracts the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (authz.Principal, bool) {
	if ctx == nil {
		return authz.Principal{}, false
	}
	principal, ok := ctx.Value(principalKey{}).(authz.Principal)
	return principal, ok
}

// ContextResolver resolves the caller from the request context.
type ContextResolver struct{}

// Principal returns the authenticated principal or false for anonymous calls.
func (ContextResolver) Principal(ctx context.Context) (authz.Principal, bool) {
	return PrincipalFromContext(ctx)
}
