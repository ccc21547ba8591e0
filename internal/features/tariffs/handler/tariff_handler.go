package handler

import (
	"net/http"
	"strconv"

	"github.com/OTISDav/vehiculesplatform/internal/core/logger"
	"github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"
	"github.com/OTISDav/vehiculesplatform/internal/features/tariffs/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TariffHandler handles HTTP requests for tariff zones and cost simulation.
type TariffHandler struct {
	service *service.TariffService
}

// NewTariffHandler creates a new TariffHandler.
func NewTariffHandler(s *service.TariffService) *TariffHandler {
	return &TariffHandler{service: s}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Field names the offending input field for validation errors.
	Field string `json:"field,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ZoneResponse is the public view of a tariff zone.
type ZoneResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Countries    []string        `json:"countries"`
	BasePrice    decimal.Decimal `json:"base_price"`
	PricePerKg   decimal.Decimal `json:"price_per_kg"`
	DelayDaysMin int             `json:"delay_days_min"`
	DelayDaysMax int             `json:"delay_days_max"`
	DelayDisplay string          `json:"delay_display"`
	Notes        string          `json:"notes,omitempty"`
}

func toZoneResponse(z *domain.Zone) ZoneResponse {
	return ZoneResponse{
		ID:           z.ID,
		Name:         z.Name,
		Countries:    z.CountryList(),
		BasePrice:    z.BasePrice,
		PricePerKg:   z.PricePerKg,
		DelayDaysMin: z.DelayDaysMin,
		DelayDaysMax: z.DelayDaysMax,
		DelayDisplay: z.DelayDisplay(),
		Notes:        z.Notes,
	}
}

// ListZones godoc
// @Summary List active tariff zones
// @Description Returns the active geographic pricing zones with their rates and delivery windows.
// @Tags logistics
// @Produce json
// @Success 200 {array} ZoneResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/logistics/zones [get]
func (h *TariffHandler) ListZones(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	zones, err := h.service.ListActiveZones(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list tariff zones",
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID,
		})
	}

	out := make([]ZoneResponse, 0, len(zones))
	for i := range zones {
		out = append(out, toZoneResponse(&zones[i]))
	}
	return c.JSON(out)
}

// Estimate godoc
// @Summary Simulate a transport cost
// @Description Computes the estimated transport cost for a country and optional weight without creating a request. An uncovered country yields an unavailable result, not an error.
// @Tags logistics
// @Produce json
// @Param country query string true "Origin country (free text)"
// @Param weight_kg query int false "Vehicle weight in kilograms"
// @Success 200 {object} domain.Estimate
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/logistics/estimate [get]
func (h *TariffHandler) Estimate(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	country := c.Query("country")
	if country == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "country query parameter is required",
			Field:   "country",
			RayID:   rayID,
		})
	}

	var weightKg *int
	if raw := c.Query("weight_kg"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w < 0 {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "weight_kg must be a non-negative integer",
				Field:   "weight_kg",
				RayID:   rayID,
			})
		}
		weightKg = &w
	}

	estimate, err := h.service.EstimateForCountry(c.Context(), country, weightKg)
	if err != nil {
		logger.Get().Error("Failed to compute estimate",
			zap.String("country", country),
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID,
		})
	}

	return c.JSON(estimate)
}

func rayIDFrom(c *fiber.Ctx) string {
	if rayID, ok := c.Locals("requestid").(string); ok {
		return rayID
	}
	return "unknown"
}
