package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-api/internal/api/metrics"
	"github.com/99minutos/auth-api/internal/core/domain"
	"github.com/99minutos/auth-api/internal/core/ports"
)

// HeaderAccessToken is accepted when no Authorization bearer token is sent.
const HeaderAccessToken = "x-access-token"

// Context keys set by Auth for downstream handlers.
const (
	ContextClaims = "claims"
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// Auth verifies the bearer token and injects its claims into the context.
// Requests without a valid token never reach next.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := extractToken(c)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(result(err)).Inc()
				return unauthorized(err)
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return unauthorized(domain.ErrInvalidToken)
			}
			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()

			c.Set(ContextClaims, claims)
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextEmail, claims.Email)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", domain.ErrInvalidToken
		}
		return strings.TrimSpace(parts[1]), nil
	}

	if token := c.Request().Header.Get(HeaderAccessToken); token != "" {
		return token, nil
	}
	return "", domain.ErrMissingToken
}

func unauthorized(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, err.Error()).SetInternal(err)
}

func result(err error) string {
	if errors.Is(err, domain.ErrMissingToken) {
		return "missing"
	}
	return "invalid"
}
