package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ActorKey is the fiber locals key holding the authenticated actor.
	ActorKey = "actor"
	// APIKeyHeader carries the static service key.
	APIKeyHeader = "X-API-Key"
	// ActorHeader names the acting user for API key callers.
	ActorHeader = "X-Actor"
)

// Config holds authentication settings.
type Config struct {
	// ApiKey enables static key access for service-to-service callers.
	ApiKey string `mapstructure:"api_key" default:""`
	// JWTSecret verifies HS256 bearer tokens; the sub claim becomes the actor.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// Skip lists path prefixes served without authentication.
	Skip []string `mapstructure:"-"`
}

var errUnauthorized = errors.New("unauthorized")

// New returns a middleware that authenticates the caller and stores the actor in
// c.Locals(ActorKey). With neither ApiKey nor JWTSecret configured every request is
// let through as "anonymous".
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, prefix := range cfg.Skip {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		if cfg.ApiKey == "" && cfg.JWTSecret == "" {
			c.Locals(ActorKey, "anonymous")
			return c.Next()
		}

		actor, err := authenticate(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		c.Locals(ActorKey, actor)
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, cfg Config) (string, error) {
	if key := c.Get(APIKeyHeader); key != "" && cfg.ApiKey != "" {
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			return "", errUnauthorized
		}
		if actor := c.Get(ActorHeader); actor != "" {
			return actor, nil
		}
		return "service", nil
	}

	if cfg.JWTSecret == "" {
		return "", errUnauthorized
	}

	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errors.New("missing token")
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// Actor returns the authenticated actor of the request.
func Actor(c *fiber.Ctx) string {
	if actor, ok := c.Locals(ActorKey).(string); ok {
		return actor
	}
	return ""
}
