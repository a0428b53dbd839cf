package api

import (
	"net/http"

	"shipping-rates/internal/api/middleware"
	"shipping-rates/internal/modules/quotes"

	"github.com/labstack/echo/v4"
)

// SetupRoutes registers the API endpoints.
func SetupRoutes(e *echo.Echo, jwtSecret string, quoteHandler *quotes.Handler) {
	authMiddleware := middleware.JWTAuth(jwtSecret)

	// --- Public Routes ---
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// --- Storefront Routes ---
	apiGroup := e.Group("/api", authMiddleware)
	{
		apiGroup.POST("/rates/quote", quoteHandler.CalculateRates)
		apiGroup.GET("/settings/credentials/check", quoteHandler.CheckCredentials)
	}
}
