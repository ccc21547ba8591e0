package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/OTISDav/vehiculesplatform/internal/core/logger"
	"github.com/OTISDav/vehiculesplatform/internal/features/transport/domain"
	"github.com/OTISDav/vehiculesplatform/internal/features/transport/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreatedMessage is shown to the client after a successful quote request.
const CreatedMessage = "Votre demande de devis a été enregistrée. Nous vous contacterons sous 24h."

// TransportHandler handles HTTP requests for the transport request lifecycle.
type TransportHandler struct {
	service *service.TransportService
}

// NewTransportHandler creates a new TransportHandler.
func NewTransportHandler(s *service.TransportService) *TransportHandler {
	return &TransportHandler{service: s}
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

// CreateRequestBody is the payload for both creation paths.
type CreateRequestBody struct {
	VehicleID       uint   `json:"vehicle_id"`
	ClientName      string `json:"client_name"`
	ClientEmail     string `json:"client_email"`
	ClientPhone     string `json:"client_phone"`
	OriginCountry   string `json:"origin_country"`
	OriginCity      string `json:"origin_city"`
	DestinationCity string `json:"destination_city"`
	VehicleWeightKg *int   `json:"vehicle_weight_kg"`
}

// UpdateStatusBody is the staff payload for a status write.
type UpdateStatusBody struct {
	Status      string `json:"status"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// UpdateCostBody is the staff payload for the negotiated final cost.
type UpdateCostBody struct {
	FinalCost decimal.Decimal `json:"final_cost"`
}

// AssignTransporterBody is the staff payload for carrier assignment.
type AssignTransporterBody struct {
	TransporterID uint `json:"transporter_id"`
}

// UpdateNotesBody is the staff payload for note edits; absent fields are left
// untouched.
type UpdateNotesBody struct {
	CustomsNote *string `json:"customs_note"`
	ClientNote  *string `json:"client_note"`
	AdminNote   *string `json:"admin_note"`
}

// StepResponse is one ledger entry in a detail or tracking view.
type StepResponse struct {
	Status      domain.Status `json:"status"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	ReachedAt   time.Time     `json:"reached_at"`
}

// RequestResponse is the detail view of a transport request. AdminNote is
// only populated on the staff route.
type RequestResponse struct {
	ID              uint             `json:"id"`
	VehicleID       uint             `json:"vehicle_id"`
	VehicleTitle    string           `json:"vehicle_title,omitempty"`
	ClientName      string           `json:"client_name"`
	ClientEmail     string           `json:"client_email"`
	ClientPhone     string           `json:"client_phone,omitempty"`
	OriginCountry   string           `json:"origin_country"`
	OriginCity      string           `json:"origin_city,omitempty"`
	DestinationCity string           `json:"destination_city"`
	ZoneID          *uint            `json:"zone_id,omitempty"`
	ZoneName        string           `json:"zone_name,omitempty"`
	VehicleWeightKg *int             `json:"vehicle_weight_kg,omitempty"`
	EstimatedCost   *decimal.Decimal `json:"estimated_cost,omitempty"`
	FinalCost       *decimal.Decimal `json:"final_cost,omitempty"`
	AdvanceRequired *decimal.Decimal `json:"advance_required,omitempty"`
	AdvancePaid     decimal.Decimal  `json:"advance_paid"`
	TransporterName string           `json:"transporter_name,omitempty"`
	Status          domain.Status    `json:"status"`
	StatusLabel     string           `json:"status_label"`
	CustomsNote     string           `json:"customs_note"`
	ClientNote      string           `json:"client_note,omitempty"`
	AdminNote       string           `json:"admin_note,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	Steps           []StepResponse   `json:"steps"`
}

// CreateResponse wraps the detail view with the client-facing confirmation.
type CreateResponse struct {
	Message string          `json:"message"`
	Request RequestResponse `json:"request"`
}

func toRequestResponse(req *domain.Request, includeAdmin bool) RequestResponse {
	out := RequestResponse{
		ID:              req.ID,
		VehicleID:       req.VehicleID,
		VehicleTitle:    req.Vehicle.Title,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		OriginCountry:   req.OriginCountry,
		OriginCity:      req.OriginCity,
		DestinationCity: req.DestinationCity,
		ZoneID:          req.ZoneID,
		VehicleWeightKg: req.VehicleWeightKg,
		EstimatedCost:   req.EstimatedCost,
		FinalCost:       req.FinalCost,
		AdvanceRequired: req.AdvanceRequired,
		AdvancePaid:     req.AdvancePaid,
		Status:          req.Status,
		StatusLabel:     req.Status.Label(),
		CustomsNote:     req.CustomsNote,
		ClientNote:      req.ClientNote,
		CreatedAt:       req.CreatedAt,
	}
	if req.Zone != nil {
		out.ZoneName = req.Zone.Name
	}
	if req.Transporter != nil {
		out.TransporterName = req.Transporter.Name
	}
	if includeAdmin {
		out.AdminNote = req.AdminNote
	}
	out.Steps = make([]StepResponse, 0, len(req.Steps))
	for _, s := range req.Steps {
		out.Steps = append(out.Steps, StepResponse{
			Status:      s.Status,
			Title:       s.Title,
			Description: s.Description,
			Location:    s.Location,
			ReachedAt:   s.ReachedAt,
		})
	}
	return out
}

// CreatePublic godoc
// @Summary Request a transport quote
// @Description Creates a transport request for an available international vehicle. The cost estimate is computed immediately when a tariff zone covers the origin country.
// @Tags logistics
// @Accept json
// @Produce json
// @Param request body CreateRequestBody true "Quote request"
// @Success 201 {object} CreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/logistics/requests [post]
func (h *TransportHandler) CreatePublic(c *fiber.Ctx) error {
	return h.create(c, h.service.CreatePublic)
}

// CreateInternal godoc
// @Summary Create a transport request on a client's behalf
// @Description Staff creation path. Eligibility is checked but availability is not, so a request can be opened for a reserved vehicle.
// @Tags logistics
// @Accept json
// @Produce json
// @Param X-Admin-Token header string true "Staff token"
// @Param request body CreateRequestBody true "Quote request"
// @Success 201 {object} CreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/logistics/requests/internal [post]
func (h *TransportHandler) CreateInternal(c *fiber.Ctx) error {
	return h.create(c, h.service.CreateInternal)
}

func (h *TransportHandler) create(c *fiber.Ctx, createFn func(ctx context.Context, in service.CreateInput) (*domain.Request, error)) error {
	rayID := rayIDFrom(c)

	var body CreateRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}
	if field := firstMissingField(body); field != "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: field + " is required",
			Field:   field,
			RayID:   rayID,
		})
	}
	if body.VehicleWeightKg != nil && *body.VehicleWeightKg < 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "vehicle_weight_kg must be a non-negative integer",
			Field:   "vehicle_weight_kg",
			RayID:   rayID,
		})
	}

	req, err := createFn(c.Context(), service.CreateInput{
		VehicleID:       body.VehicleID,
		ClientName:      body.ClientName,
		ClientEmail:     body.ClientEmail,
		ClientPhone:     body.ClientPhone,
		OriginCountry:   body.OriginCountry,
		OriginCity:      body.OriginCity,
		DestinationCity: body.DestinationCity,
		VehicleWeightKg: body.VehicleWeightKg,
	})
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}

	return c.Status(http.StatusCreated).JSON(CreateResponse{
		Message: CreatedMessage,
		Request: toRequestResponse(req, false),
	})
}

// GetDetail godoc
// @Summary Get a transport request
// @Description Staff detail view of a request with its full tracking ledger.
// @Tags logistics
// @Produce json
// @Param X-Admin-Token header string true "Staff token"
// @Param id path int true "Request ID"
// @Success 200 {object} RequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/logistics/requests/{id} [get]
func (h *TransportHandler) GetDetail(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	id, ok := requestID(c, rayID)
	if !ok {
		return nil
	}

	req, err := h.service.GetDetail(c.Context(), id)
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.JSON(toRequestResponse(req, true))
}

// Track godoc
// @Summary Track a transport request
// @Description Public tracking view. Knowing the request identifier is the only credential; no account is needed.
// @Tags logistics
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} domain.TrackingSnapshot
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/logistics/track/{id} [get]
func (h *TransportHandler) Track(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	id, ok := requestID(c, rayID)
	if !ok {
		return nil
	}

	snapshot, err := h.service.Track(c.Context(), id)
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.JSON(snapshot)
}

// UpdateStatus godoc
// @Summary Advance a transport request
// @Description Staff status write. Any known status may be set from any state; re-submitting the current status is a no-op. The matching ledger step is appended with an optional custom title.
// @Tags logistics
// @Accept json
// @Produce json
// @Param X-Admin-Token header string true "Staff token"
// @Param id path int true "Request ID"
// @Param request body UpdateStatusBody true "New status"
// @Success 200 {object} RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/logistics/requests/{id}/status [patch]
func (h *TransportHandler) UpdateStatus(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	id, ok := requestID(c, rayID)
	if !ok {
		return nil
	}

	var body UpdateStatusBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}
	if body.Status == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "status is required",
			Field:   "status",
			RayID:   rayID,
		})
	}

	req, err := h.service.Advance(c.Context(), id, service.AdvanceInput{
		NewStatus:   domain.Status(body.Status),
		Title:       body.Title,
		Description: body.Description,
		Location:    body.Location,
	})
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.JSON(toRequestResponse(req, true))
}

// UpdateCost godoc
// @Summary Set the negotiated final cost
// @Tags logistics
// @Accept json
// @Produce json
// @Param X-Admin-Token header string true "Staff token"
// @Param id path int true "Request ID"
// @Param request body UpdateCostBody true "Final cost"
// @Success 200 {object} RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/logistics/requests/{id}/cost [patch]
func (h *TransportHandler) UpdateCost(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	id, ok := requestID(c, rayID)
	if !ok {
		return nil
	}

	var body UpdateCostBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}
	if body.FinalCost.IsNegative() {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "final_cost must not be negative",
			Field:   "final_cost",
			RayID:   rayID,
		})
	}

	req, err := h.service.SetFinalCost(c.Context(), id, body.FinalCost)
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.JSON(toRequestResponse(req, true))
}

// AssignTransporter godoc
// @Summary Assign a partner carrier
// @Tags logistics
// @Accept json
// @Produce json
// @Param X-Admin-Token header string true "Staff token"
// @Param id path int true "Request ID"
// @Param request body AssignTransporterBody true "Transporter"
// @Success 200 {object} RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/logistics/requests/{id}/transporter [patch]
func (h *TransportHandler) AssignTransporter(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	id, ok := requestID(c, rayID)
	if !ok {
		return nil
	}

	var body AssignTransporterBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}
	if body.TransporterID == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "transporter_id is required",
			Field:   "transporter_id",
			RayID:   rayID,
		})
	}

	req, err := h.service.AssignTransporter(c.Context(), id, body.TransporterID)
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.JSON(toRequestResponse(req, true))
}

// UpdateNotes godoc
// @Summary Edit the request notes
// @Description Partial edit; fields absent from the payload keep their value.
// @Tags logistics
// @Accept json
// @Produce json
// @Param X-Admin-Token header string true "Staff token"
// @Param id path int true "Request ID"
// @Param request body UpdateNotesBody true "Notes"
// @Success 200 {object} RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/logistics/requests/{id}/notes [patch]
func (h *TransportHandler) UpdateNotes(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	id, ok := requestID(c, rayID)
	if !ok {
		return nil
	}

	var body UpdateNotesBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}

	req, err := h.service.UpdateNotes(c.Context(), id, service.NotesInput{
		CustomsNote: body.CustomsNote,
		ClientNote:  body.ClientNote,
		AdminNote:   body.AdminNote,
	})
	if err != nil {
		return h.mapServiceError(c, rayID, err)
	}
	return c.JSON(toRequestResponse(req, true))
}

func (h *TransportHandler) mapServiceError(c *fiber.Ctx, rayID string, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingField):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID,
		})
	case errors.Is(err, service.ErrUnknownStatus):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
			Field:   "status",
			RayID:   rayID,
		})
	case errors.Is(err, service.ErrInvalidAmount):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
			Field:   "amount",
			RayID:   rayID,
		})
	case errors.Is(err, service.ErrVehicleNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrTransporterNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID,
		})
	case errors.Is(err, service.ErrVehicleNotEligible):
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Message: err.Error(),
			Field:   "vehicle_id",
			RayID:   rayID,
		})
	case errors.Is(err, service.ErrVehicleUnavailable):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Message: err.Error(),
			Field:   "vehicle_id",
			RayID:   rayID,
		})
	}

	logger.Get().Error("Transport request operation failed",
		zap.String("ray_id", rayID),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal Server Error",
		RayID:   rayID,
	})
}

// requestID parses the :id path parameter; on failure it writes the 400
// response itself and returns ok=false.
func requestID(c *fiber.Ctx, rayID string) (uint, bool) {
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

func firstMissingField(body CreateRequestBody) string {
	switch {
	case body.VehicleID == 0:
		return "vehicle_id"
	case body.ClientName == "":
		return "client_name"
	case body.ClientEmail == "":
		return "client_email"
	case body.OriginCountry == "":
		return "origin_country"
	}
	return ""
}

func rayIDFrom(c *fiber.Ctx) string {
	if rayID, ok := c.Locals("requestid").(string); ok {
		return rayID
	}
	return "unknown"
}
