package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// XTelegramSecretToken carries the secret registered with setWebhook.
const XTelegramSecretToken = "X-Telegram-Bot-Api-Secret-Token"

// SecretToken rejects requests whose secret token header differs from secret.
// An empty secret disables the check.
func SecretToken(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		want := []byte(secret)
		return func(c echo.Context) error {
			got := []byte(c.Request().Header.Get(XTelegramSecretToken))
			if subtle.ConstantTimeCompare(got, want) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid secret token")
			}
			return next(c)
		}
	}
}
