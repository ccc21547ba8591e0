package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OTISDav/vehiculesplatform/internal/core/config"
	"github.com/OTISDav/vehiculesplatform/internal/core/logger"
	catalogdomain "github.com/OTISDav/vehiculesplatform/internal/features/catalog/domain"
	catalogports "github.com/OTISDav/vehiculesplatform/internal/features/catalog/ports"
	tariffdomain "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"
	tariffports "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/ports"
	"github.com/OTISDav/vehiculesplatform/internal/features/transport/domain"
	"github.com/OTISDav/vehiculesplatform/internal/features/transport/ports"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrVehicleNotFound is returned when the referenced vehicle does not exist.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrVehicleNotEligible is returned when the vehicle is not an international listing.
	ErrVehicleNotEligible = errors.New("vehicle not eligible for transport")
	// ErrVehicleUnavailable is returned on the public path when the vehicle is not available.
	ErrVehicleUnavailable = errors.New("vehicle unavailable")
	// ErrRequestNotFound is returned when the request identifier is unknown.
	ErrRequestNotFound = errors.New("transport request not found")
	// ErrTransporterNotFound is returned when assigning an unknown transporter.
	ErrTransporterNotFound = errors.New("transporter not found")
	// ErrUnknownStatus is returned when a status write carries a value outside the nine known states.
	ErrUnknownStatus = errors.New("unknown transport status")
	// ErrMissingField is returned when a required client field is blank; the
	// wrapped message names the field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidAmount is returned for non-positive payment amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// firstStepTitle is the fixed title of the initial ledger entry.
const firstStepTitle = "Demande reçue"

// CreateInput carries the client-provided fields of a new transport request.
type CreateInput struct {
	VehicleID       uint
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	OriginCountry   string
	OriginCity      string
	DestinationCity string
	VehicleWeightKg *int
}

// AdvanceInput carries a staff status write.
type AdvanceInput struct {
	NewStatus   domain.Status
	Title       string // optional override; canonical label when empty
	Description string
	Location    string
}

// NotesInput carries partial note edits; nil fields are left untouched.
type NotesInput struct {
	CustomsNote *string
	ClientNote  *string
	AdminNote   *string
}

// TransportService orchestrates the transport request lifecycle: creation,
// status advancement with ledger appends, staff edits and public tracking.
type TransportService struct {
	requests     ports.RequestRepository
	vehicles     catalogports.VehicleRepository
	transporters tariffports.TransporterRepository
	resolver     ports.ZoneResolver
	tracking     ports.TrackingCache
	cfg          config.LogisticsConfig
	log          *zap.Logger
}

// NewTransportService creates a new TransportService. The tracking cache may
// be nil; tracking then recomputes on every call.
func NewTransportService(
	requests ports.RequestRepository,
	vehicles catalogports.VehicleRepository,
	transporters tariffports.TransporterRepository,
	resolver ports.ZoneResolver,
	tracking ports.TrackingCache,
	cfg config.LogisticsConfig,
) *TransportService {
	return &TransportService{
		requests:     requests,
		vehicles:     vehicles,
		transporters: transporters,
		resolver:     resolver,
		tracking:     tracking,
		cfg:          cfg,
		log:          logger.Named("transport.service"),
	}
}

// CreatePublic handles the client-facing creation path: the vehicle must be an
// international listing AND currently available.
func (s *TransportService) CreatePublic(ctx context.Context, in CreateInput) (*domain.Request, error) {
	return s.create(ctx, in, true)
}

// CreateInternal handles the staff creation path, which historically checks
// only eligibility, not availability. The two paths are kept separate on
// purpose; see the detail in the repository design notes.
func (s *TransportService) CreateInternal(ctx context.Context, in CreateInput) (*domain.Request, error) {
	return s.create(ctx, in, false)
}

func (s *TransportService) create(ctx context.Context, in CreateInput, checkAvailability bool) (*domain.Request, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.FindByID(ctx, in.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	if vehicle.Origin != catalogdomain.OriginInternational {
		return nil, ErrVehicleNotEligible
	}
	if checkAvailability && vehicle.Status != catalogdomain.VehicleStatusAvailable {
		return nil, ErrVehicleUnavailable
	}

	zone, err := s.resolver.ResolveZone(ctx, in.OriginCountry)
	if err != nil {
		return nil, fmt.Errorf("zone resolution failed: %w", err)
	}

	destination := strings.TrimSpace(in.DestinationCity)
	if destination == "" {
		destination = s.cfg.DestinationCity
	}

	req := &domain.Request{
		VehicleID:       vehicle.ID,
		Vehicle:         *vehicle,
		ClientName:      strings.TrimSpace(in.ClientName),
		ClientEmail:     strings.TrimSpace(in.ClientEmail),
		ClientPhone:     strings.TrimSpace(in.ClientPhone),
		OriginCountry:   strings.TrimSpace(in.OriginCountry),
		OriginCity:      strings.TrimSpace(in.OriginCity),
		DestinationCity: destination,
		VehicleWeightKg: in.VehicleWeightKg,
		AdvancePaid:     decimal.Zero,
		Status:          domain.StatusQuoteRequested,
		CustomsNote:     s.cfg.CustomsNote,
	}

	// Figures are computed once here and never recomputed; a missing zone is
	// a normal degraded outcome, staff quote manually.
	if zone != nil {
		req.ZoneID = &zone.ID
		req.Zone = zone
		est := tariffdomain.ComputeEstimate(zone, in.VehicleWeightKg, s.resolver.AdvanceRate())
		req.EstimatedCost = &est.Total
		req.AdvanceRequired = &est.AdvanceRequired
	}

	firstStep := &domain.Step{
		Status:      domain.StatusQuoteRequested,
		Title:       firstStepTitle,
		Description: fmt.Sprintf("Demande de transport pour %s depuis %s.", vehicle.Title, req.OriginCountry),
		ReachedAt:   time.Now(),
	}

	if err := s.requests.Create(ctx, req, firstStep); err != nil {
		return nil, fmt.Errorf("failed to persist transport request: %w", err)
	}
	req.Steps = []domain.Step{*firstStep}

	s.log.Info("transport request created",
		zap.Uint("request_id", req.ID),
		zap.Uint("vehicle_id", vehicle.ID),
		zap.String("origin_country", req.OriginCountry),
		zap.Bool("zone_resolved", zone != nil),
	)
	return req, nil
}

// Advance writes a new status and appends the matching ledger step.
//
// No transition graph is enforced: staff may set any known status from any
// state. Writing the current status again is an idempotent no-op that leaves
// the ledger and updated_at untouched.
func (s *TransportService) Advance(ctx context.Context, requestID uint, in AdvanceInput) (*domain.Request, error) {
	if !in.NewStatus.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, in.NewStatus)
	}

	req, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status == in.NewStatus {
		return req, nil
	}

	title := in.Title
	if title == "" {
		title = in.NewStatus.Label()
	}

	req.Status = in.NewStatus
	step := &domain.Step{
		Status:      in.NewStatus,
		Title:       title,
		Description: in.Description,
		Location:    in.Location,
		ReachedAt:   time.Now(),
	}

	if err := s.requests.AppendStep(ctx, req, step); err != nil {
		return nil, fmt.Errorf("failed to advance request %d: %w", requestID, err)
	}
	req.Steps = append(req.Steps, *step)
	s.invalidateTracking(ctx, requestID)

	s.log.Info("transport request advanced",
		zap.Uint("request_id", requestID),
		zap.String("status", string(in.NewStatus)),
	)
	return req, nil
}

// RecordAdvancePayment adds a confirmed payment amount to the request's
// advance. It never transitions status; moving to advance_paid stays an
// explicit staff action.
func (s *TransportService) RecordAdvancePayment(ctx context.Context, requestID uint, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	req, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return err
	}

	req.AdvancePaid = req.AdvancePaid.Add(amount)
	if err := s.requests.Update(ctx, req); err != nil {
		return fmt.Errorf("failed to record advance payment: %w", err)
	}
	s.invalidateTracking(ctx, requestID)

	s.log.Info("advance payment recorded",
		zap.Uint("request_id", requestID),
		zap.String("amount", amount.String()),
		zap.String("advance_paid", req.AdvancePaid.String()),
	)
	return nil
}

// SetFinalCost records the staff-negotiated final cost. Unconstrained: it may
// be set at any status and is independent of the estimate.
func (s *TransportService) SetFinalCost(ctx context.Context, requestID uint, amount decimal.Decimal) (*domain.Request, error) {
	req, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	req.FinalCost = &amount
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to set final cost: %w", err)
	}
	s.invalidateTracking(ctx, requestID)
	return req, nil
}

// AssignTransporter links a partner carrier to the request.
func (s *TransportService) AssignTransporter(ctx context.Context, requestID, transporterID uint) (*domain.Request, error) {
	transporter, err := s.transporters.FindByID(ctx, transporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transporter: %w", err)
	}
	if transporter == nil {
		return nil, ErrTransporterNotFound
	}

	req, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	req.TransporterID = &transporter.ID
	req.Transporter = transporter
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to assign transporter: %w", err)
	}
	s.invalidateTracking(ctx, requestID)
	return req, nil
}

// UpdateNotes edits the request notes; nil fields keep their value.
func (s *TransportService) UpdateNotes(ctx context.Context, requestID uint, in NotesInput) (*domain.Request, error) {
	req, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if in.CustomsNote != nil {
		req.CustomsNote = *in.CustomsNote
	}
	if in.ClientNote != nil {
		req.ClientNote = *in.ClientNote
	}
	if in.AdminNote != nil {
		req.AdminNote = *in.AdminNote
	}

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}
	s.invalidateTracking(ctx, requestID)
	return req, nil
}

// GetDetail returns the full request with its ledger and related entities.
func (s *TransportService) GetDetail(ctx context.Context, requestID uint) (*domain.Request, error) {
	return s.loadRequest(ctx, requestID)
}

// Track returns the public tracking snapshot, served from cache when fresh.
func (s *TransportService) Track(ctx context.Context, requestID uint) (*domain.TrackingSnapshot, error) {
	if s.tracking != nil {
		snapshot, err := s.tracking.Get(ctx, requestID)
		if err != nil {
			s.log.Warn("tracking cache read failed", zap.Uint("request_id", requestID), zap.Error(err))
		} else if snapshot != nil {
			return snapshot, nil
		}
	}

	req, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	snapshot := domain.ProjectTracking(req)
	if s.tracking != nil {
		if err := s.tracking.Put(ctx, &snapshot); err != nil {
			s.log.Warn("tracking cache write failed", zap.Uint("request_id", requestID), zap.Error(err))
		}
	}
	return &snapshot, nil
}

func (s *TransportService) loadRequest(ctx context.Context, requestID uint) (*domain.Request, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load request %d: %w", requestID, err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *TransportService) invalidateTracking(ctx context.Context, requestID uint) {
	if s.tracking == nil {
		return
	}
	if err := s.tracking.Invalidate(ctx, requestID); err != nil {
		s.log.Warn("tracking cache invalidation failed", zap.Uint("request_id", requestID), zap.Error(err))
	}
}

func validateCreateInput(in CreateInput) error {
	if in.VehicleID == 0 {
		return fmt.Errorf("%w: vehicle_id", ErrMissingField)
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return fmt.Errorf("%w: client_name", ErrMissingField)
	}
	if strings.TrimSpace(in.ClientEmail) == "" {
		return fmt.Errorf("%w: client_email", ErrMissingField)
	}
	if strings.TrimSpace(in.OriginCountry) == "" {
		return fmt.Errorf("%w: origin_country", ErrMissingField)
	}
	if in.VehicleWeightKg != nil && *in.VehicleWeightKg < 0 {
		return fmt.Errorf("%w: vehicle_weight_kg", ErrMissingField)
	}
	return nil
}
