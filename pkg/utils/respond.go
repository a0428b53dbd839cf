package utils

import (
	"shipping-rates/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// RespondWithError writes a JSON error body with the given status code.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}
