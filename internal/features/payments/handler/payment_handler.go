package handler

import (
	"errors"
	"net/http"

	"github.com/OTISDav/vehiculesplatform/internal/core/logger"
	"github.com/OTISDav/vehiculesplatform/internal/features/payments/domain"
	"github.com/OTISDav/vehiculesplatform/internal/features/payments/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	service *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(s *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
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

// CreatePaymentBody is the payload recording a new payment attempt.
type CreatePaymentBody struct {
	Type        string          `json:"type"`
	Method      string          `json:"method"`
	ReferenceID uint            `json:"reference_id"`
	Amount      decimal.Decimal `json:"amount"`
	PayerName   string          `json:"payer_name"`
	PayerPhone  string          `json:"payer_phone"`
}

// Create godoc
// @Summary Record a payment
// @Description Records a pending payment against a rental, part order or transport request. Settlement is a separate staff step.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body CreatePaymentBody true "Payment"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	var body CreatePaymentBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}

	payment, err := h.service.CreatePending(c.Context(), service.CreateInput{
		Type:        domain.Type(body.Type),
		Method:      domain.Method(body.Method),
		ReferenceID: body.ReferenceID,
		Amount:      body.Amount,
		PayerName:   body.PayerName,
		PayerPhone:  body.PayerPhone,
	})
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.Status(http.StatusCreated).JSON(payment)
}

// Confirm godoc
// @Summary Confirm a pending payment
// @Description Settles a pending payment. A transport advance is accrued on its request; the request status is never changed by a payment.
// @Tags payments
// @Produce json
// @Param X-Admin-Token header string true "Staff token"
// @Param id path int true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/payments/{id}/confirm [post]
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	id, ok := paymentID(c, rayID)
	if !ok {
		return nil
	}

	payment, err := h.service.Confirm(c.Context(), id)
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.JSON(payment)
}

// Fail godoc
// @Summary Mark a pending payment as failed
// @Tags payments
// @Produce json
// @Param X-Admin-Token header string true "Staff token"
// @Param id path int true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/payments/{id}/fail [post]
func (h *PaymentHandler) Fail(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	id, ok := paymentID(c, rayID)
	if !ok {
		return nil
	}

	payment, err := h.service.Fail(c.Context(), id)
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.JSON(payment)
}

// GetByID godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Param X-Admin-Token header string true "Staff token"
// @Param id path int true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	id, ok := paymentID(c, rayID)
	if !ok {
		return nil
	}

	payment, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.JSON(payment)
}

func (h *PaymentHandler) mapServiceError(c *fiber.Ctx, rayID string, err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownType):
		return badRequest(c, rayID, err.Error(), "type")
	case errors.Is(err, service.ErrUnknownMethod):
		return badRequest(c, rayID, err.Error(), "method")
	case errors.Is(err, service.ErrMissingReference):
		return badRequest(c, rayID, err.Error(), "reference_id")
	case errors.Is(err, service.ErrInvalidAmount):
		return badRequest(c, rayID, err.Error(), "amount")
	case errors.Is(err, service.ErrPaymentNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID,
		})
	case errors.Is(err, service.ErrPaymentNotPending):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID,
		})
	}

	logger.Get().Error("Payment operation failed",
		zap.String("ray_id", rayID),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal Server Error",
		RayID:   rayID,
	})
}

func badRequest(c *fiber.Ctx, rayID, message, field string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Message: message,
		Field:   field,
		RayID:   rayID,
	})
}

func paymentID(c *fiber.Ctx, rayID string) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "id must be a positive integer",
			Field:   "id",
			RayID:   rayID,
		})
		return 0, false
	}
	return uint(id), true
}

func rayIDFrom(c *fiber.Ctx) string {
	if rayID, ok := c.Locals("requestid").(string); ok {
		return rayID
	}
	return "unknown"
}
