package quotes

import (
	"net/http"

	"shipping-rates/internal/models"
	"shipping-rates/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for rate calculations.
type Handler struct {
	svc *Service
}

// NewHandler creates a new quotes handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// CalculateRates handles POST /rates/quote.
func (h *Handler) CalculateRates(c echo.Context) error {
	var req models.CalculateRatesRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	shipment := models.ShipmentContext{Destination: req.Destination}
	rates, err := h.svc.CalculateRates(c.Request().Context(), req.Cart, shipment)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to calculate rates")
	}
	if rates == nil {
		rates = []models.Rate{}
	}

	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"rates": rates})
}

// CheckCredentials handles GET /settings/credentials/check.
func (h *Handler) CheckCredentials(c echo.Context) error {
	valid := h.svc.CheckCredentials(c.Request().Context())
	return utils.RespondWithJSON(c, http.StatusOK, map[string]bool{"valid": valid})
}
