package middleware

import (
	"crypto/subtle"
	"strings"

	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const APIKeyHeader = "apikey"

// APIKey требует анонимный ключ сервиса в заголовке apikey.
// Пути из open пропускаются без ключа.
func APIKey(anonKey string, logger *zap.Logger, open ...string) echo.MiddlewareFunc {
	return echomw.KeyAuthWithConfig(echomw.KeyAuthConfig{
		KeyLookup: "header:" + APIKeyHeader,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			for _, p := range open {
				if prefix, ok := strings.CutSuffix(p, "*"); ok {
					if strings.HasPrefix(path, prefix) {
						return true
					}
				} else if path == p {
					return true
				}
			}
			return false
		},
		Validator: func(key string, c echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(anonKey)) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			logger.Warn("APIKey: запрос без валидного ключа",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
			return utils.ErrorResponse(c, apperrors.ErrInvalidAPIKey, logger)
		},
	})
}
