package app

import (
	"github.com/charlesng35/restaurants/internal/auth"
	"github.com/charlesng35/restaurants/pkg/crypto"
)

// JWTServiceConfig converts AuthConfig into the parameters expected by the JWT service.
func (c AuthConfig) JWTServiceConfig() auth.JWTConfig {
	ttl := c.JWT.TTL
	if ttl <= 0 {
		ttl = auth.DefaultAccessTokenTTL
	}

	return auth.JWTConfig{
		Secret:         c.JWT.Secret,
		Issuer:         c.JWT.Issuer,
		AccessTokenTTL: ttl,
	}
}

// PasswordHasher builds the bcrypt hasher for the configured cost.
func (c AuthConfig) PasswordHasher() crypto.PasswordHasher {
	return crypto.NewPasswordHasher(c.BcryptCost)
}
