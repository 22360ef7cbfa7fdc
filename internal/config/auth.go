package config

import (
	"errors"
	"log"
	"os"
	"sync"
	"time"
)

const (
	defaultJWTSecret = "skillsync-development-secret"
	defaultJWTTTL    = 7 * 24 * time.Hour
)

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = defaultJWTSecret
			log.Println("Warning: JWT_SECRET not set, using development secret")
		}
		ttl := defaultJWTTTL
		if raw := os.Getenv("JWT_TTL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil {
				ttl = parsed
			}
		}
		authConfig = &AuthConfig{
			JWTSecret: secret,
			TokenTTL:  ttl,
		}
	})
	return authConfig
}

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set in production")

// Validate rejects the built-in development secret outside development.
func (c *AuthConfig) Validate(app *AppConfig) error {
	if app.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return ErrInsecureJWTSecret
	}
	return nil
}
