package middleware

import (
	"strings"

	"discovery-service/pkg/jwtutil"
	"discovery-service/pkg/logger"
	"discovery-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ViewerMiddleware extracts an optional viewer identity from a Bearer token.
// The discovery surface is public: requests without a token, or with an
// invalid one, are served anonymously rather than rejected. A valid token
// personalizes the ranking.
func ViewerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format, serving anonymously")
			return next(c)
		}

		prometheus.AuthAttemptsCounter.Inc()
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			prometheus.AuthErrorsCounter.Inc()
			log.Warn("Invalid viewer token, serving anonymously", zap.Error(err))
			return next(c)
		}

		c.Set("viewer_id", claims.UserID)
		log.Info("Request personalized with viewer context",
			zap.Uint("viewer_id", claims.UserID))

		return next(c)
	}
}

// GetViewerIDFromContext retrieves the viewer ID from the context.
// Returns 0, false for anonymous requests.
func GetViewerIDFromContext(c echo.Context) (uint, bool) {
	viewerID, ok := c.Get("viewer_id").(uint)
	return viewerID, ok
}
