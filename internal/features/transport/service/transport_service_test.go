package service

import (
	"context"
	"testing"
	"time"

	"github.com/OTISDav/vehiculesplatform/internal/core/config"
	catalogdomain "github.com/OTISDav/vehiculesplatform/internal/features/catalog/domain"
	tariffdomain "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"
	"github.com/OTISDav/vehiculesplatform/internal/features/transport/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockRequestRepository struct {
	requests    map[uint]*domain.Request
	nextID      uint
	createCalls int
	findCalls   int
	appendCalls int
	updateCalls int
	err         error
}

func newMockRequestRepository() *mockRequestRepository {
	return &mockRequestRepository{requests: make(map[uint]*domain.Request), nextID: 1}
}

func (m *mockRequestRepository) Create(_ context.Context, req *domain.Request, firstStep *domain.Step) error {
	m.createCalls++
	if m.err != nil {
		return m.err
	}
	req.ID = m.nextID
	m.nextID++
	firstStep.RequestID = req.ID
	stored := *req
	stored.Steps = []domain.Step{*firstStep}
	m.requests[req.ID] = &stored
	return nil
}

func (m *mockRequestRepository) FindByID(_ context.Context, id uint) (*domain.Request, error) {
	m.findCalls++
	if m.err != nil {
		return nil, m.err
	}
	req, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	cp.Steps = append([]domain.Step(nil), req.Steps...)
	return &cp, nil
}

func (m *mockRequestRepository) AppendStep(_ context.Context, req *domain.Request, step *domain.Step) error {
	m.appendCalls++
	if m.err != nil {
		return m.err
	}
	stored := m.requests[req.ID]
	stored.Status = req.Status
	step.RequestID = req.ID
	stored.Steps = append(stored.Steps, *step)
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *mockRequestRepository) Update(_ context.Context, req *domain.Request) error {
	m.updateCalls++
	if m.err != nil {
		return m.err
	}
	steps := m.requests[req.ID].Steps
	stored := *req
	stored.Steps = steps
	stored.UpdatedAt = time.Now()
	m.requests[req.ID] = &stored
	return nil
}

type mockVehicleRepository struct {
	vehicles map[uint]*catalogdomain.Vehicle
}

func (m *mockVehicleRepository) FindByID(_ context.Context, id uint) (*catalogdomain.Vehicle, error) {
	return m.vehicles[id], nil
}

type mockTransporterRepository struct {
	transporters map[uint]*tariffdomain.Transporter
}

func (m *mockTransporterRepository) FindByID(_ context.Context, id uint) (*tariffdomain.Transporter, error) {
	return m.transporters[id], nil
}

type mockZoneResolver struct {
	zone *tariffdomain.Zone
	rate float64
}

func (m *mockZoneResolver) ResolveZone(_ context.Context, _ string) (*tariffdomain.Zone, error) {
	return m.zone, nil
}

func (m *mockZoneResolver) AdvanceRate() float64 { return m.rate }

type mockTrackingCache struct {
	snapshots       map[uint]*domain.TrackingSnapshot
	getCalls        int
	putCalls        int
	invalidateCalls int
}

func newMockTrackingCache() *mockTrackingCache {
	return &mockTrackingCache{snapshots: make(map[uint]*domain.TrackingSnapshot)}
}

func (m *mockTrackingCache) Get(_ context.Context, requestID uint) (*domain.TrackingSnapshot, error) {
	m.getCalls++
	return m.snapshots[requestID], nil
}

func (m *mockTrackingCache) Put(_ context.Context, snapshot *domain.TrackingSnapshot) error {
	m.putCalls++
	m.snapshots[snapshot.RequestID] = snapshot
	return nil
}

func (m *mockTrackingCache) Invalidate(_ context.Context, requestID uint) error {
	m.invalidateCalls++
	delete(m.snapshots, requestID)
	return nil
}

// --- Fixtures ---

func testLogisticsConfig() config.LogisticsConfig {
	return config.LogisticsConfig{
		AdvanceRate:     0.30,
		DestinationCity: "Lomé",
		CustomsNote:     "Le dédouanement n'est pas inclus dans ce devis.",
	}
}

func testZone() *tariffdomain.Zone {
	return &tariffdomain.Zone{
		ID:           1,
		Name:         "Europe Occidentale",
		Countries:    "France\nAllemagne\nBelgique",
		BasePrice:    decimal.NewFromInt(2_500_000),
		PricePerKg:   decimal.NewFromInt(500),
		DelayDaysMin: 25,
		DelayDaysMax: 35,
		IsActive:     true,
	}
}

func testVehicle(origin catalogdomain.VehicleOrigin, status catalogdomain.VehicleStatus) *catalogdomain.Vehicle {
	return &catalogdomain.Vehicle{
		ID:     42,
		Title:  "Toyota Land Cruiser 2021",
		Origin: origin,
		Status: status,
	}
}

type testEnv struct {
	svc      *TransportService
	requests *mockRequestRepository
	cache    *mockTrackingCache
}

func newTestEnv(vehicle *catalogdomain.Vehicle, zone *tariffdomain.Zone) testEnv {
	requests := newMockRequestRepository()
	cache := newMockTrackingCache()
	vehicles := &mockVehicleRepository{vehicles: map[uint]*catalogdomain.Vehicle{}}
	if vehicle != nil {
		vehicles.vehicles[vehicle.ID] = vehicle
	}
	transporters := &mockTransporterRepository{transporters: map[uint]*tariffdomain.Transporter{
		7: {ID: 7, Name: "Translog Express"},
	}}
	svc := NewTransportService(
		requests,
		vehicles,
		transporters,
		&mockZoneResolver{zone: zone, rate: 0.30},
		cache,
		testLogisticsConfig(),
	)
	return testEnv{svc: svc, requests: requests, cache: cache}
}

func weight(kg int) *int { return &kg }

func validInput() CreateInput {
	return CreateInput{
		VehicleID:       42,
		ClientName:      "Kossi Mensah",
		ClientEmail:     "kossi@example.com",
		ClientPhone:     "+228 90 00 00 00",
		OriginCountry:   "France",
		OriginCity:      "Marseille",
		VehicleWeightKg: weight(1800),
	}
}

// --- Creation ---

// TestTransportService_CreatePublic_Success verifies the happy path: the
// estimate is priced against the resolved zone and the first ledger entry is
// written atomically with the request.
func TestTransportService_CreatePublic_Success(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())

	req, err := env.svc.CreatePublic(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusQuoteRequested, req.Status)
	require.NotNil(t, req.EstimatedCost)
	require.NotNil(t, req.AdvanceRequired)
	assert.True(t, req.EstimatedCost.Equal(decimal.NewFromInt(3_400_000)), "got %s", req.EstimatedCost)
	assert.True(t, req.AdvanceRequired.Equal(decimal.NewFromInt(1_020_000)), "got %s", req.AdvanceRequired)
	assert.True(t, req.AdvancePaid.IsZero())
	assert.Equal(t, "Lomé", req.DestinationCity)
	assert.Equal(t, "Le dédouanement n'est pas inclus dans ce devis.", req.CustomsNote)

	require.Len(t, req.Steps, 1)
	assert.Equal(t, "Demande reçue", req.Steps[0].Title)
	assert.Equal(t, "Demande de transport pour Toyota Land Cruiser 2021 depuis France.", req.Steps[0].Description)
	assert.Equal(t, domain.StatusQuoteRequested, req.Steps[0].Status)
	assert.Equal(t, 1, env.requests.createCalls)
}

// TestTransportService_CreatePublic_UnresolvedZone verifies that an uncovered
// origin country still creates the request, just without figures.
func TestTransportService_CreatePublic_UnresolvedZone(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), nil)

	req, err := env.svc.CreatePublic(context.Background(), validInput())
	require.NoError(t, err)

	assert.Nil(t, req.ZoneID)
	assert.Nil(t, req.EstimatedCost)
	assert.Nil(t, req.AdvanceRequired)
	assert.Equal(t, domain.StatusQuoteRequested, req.Status)
	require.Len(t, req.Steps, 1)
}

// TestTransportService_CreatePublic_NotEligible verifies that a local vehicle
// is rejected before any write happens.
func TestTransportService_CreatePublic_NotEligible(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginLocal, catalogdomain.VehicleStatusAvailable), testZone())

	_, err := env.svc.CreatePublic(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrVehicleNotEligible)
	assert.Equal(t, 0, env.requests.createCalls)
	assert.Empty(t, env.requests.requests)
}

// TestTransportService_CreatePublic_Unavailable verifies that the public path
// rejects reserved vehicles while the internal path accepts them.
func TestTransportService_CreatePublic_Unavailable(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusReserved), testZone())

	_, err := env.svc.CreatePublic(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrVehicleUnavailable)

	req, err := env.svc.CreateInternal(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoteRequested, req.Status)
}

// TestTransportService_CreatePublic_UnknownVehicle verifies the not-found path.
func TestTransportService_CreatePublic_UnknownVehicle(t *testing.T) {
	env := newTestEnv(nil, testZone())

	_, err := env.svc.CreatePublic(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

// TestTransportService_CreatePublic_MissingFields verifies that blank required
// fields are rejected with the field name in the error.
func TestTransportService_CreatePublic_MissingFields(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())

	in := validInput()
	in.ClientEmail = "   "
	_, err := env.svc.CreatePublic(context.Background(), in)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "client_email")
	assert.Equal(t, 0, env.requests.createCalls)

	in = validInput()
	in.VehicleWeightKg = weight(-5)
	_, err = env.svc.CreatePublic(context.Background(), in)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "vehicle_weight_kg")
}

// --- Advancement ---

func createdRequest(t *testing.T, env testEnv) *domain.Request {
	t.Helper()
	req, err := env.svc.CreatePublic(context.Background(), validInput())
	require.NoError(t, err)
	return req
}

// TestTransportService_Advance_AppendsStep verifies that a status change
// appends exactly one ledger entry and invalidates the tracking snapshot.
func TestTransportService_Advance_AppendsStep(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)

	updated, err := env.svc.Advance(context.Background(), req.ID, AdvanceInput{
		NewStatus: domain.StatusQuoteSent,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusQuoteSent, updated.Status)
	require.Len(t, updated.Steps, 2)
	assert.Equal(t, "Devis envoyé au client", updated.Steps[1].Title)
	assert.Equal(t, 1, env.requests.appendCalls)
	assert.Equal(t, 1, env.cache.invalidateCalls)
}

// TestTransportService_Advance_SameStatusNoOp verifies that re-submitting the
// current status changes nothing: no ledger entry, no write, no invalidation.
func TestTransportService_Advance_SameStatusNoOp(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)
	before := env.requests.requests[req.ID].UpdatedAt

	updated, err := env.svc.Advance(context.Background(), req.ID, AdvanceInput{
		NewStatus: domain.StatusQuoteRequested,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusQuoteRequested, updated.Status)
	require.Len(t, updated.Steps, 1)
	assert.Equal(t, 0, env.requests.appendCalls)
	assert.Equal(t, 0, env.cache.invalidateCalls)
	assert.Equal(t, before, env.requests.requests[req.ID].UpdatedAt)
}

// TestTransportService_Advance_CancelFromAnyState verifies that cancellation
// needs no particular prior state and that skipping states is allowed.
func TestTransportService_Advance_CancelFromAnyState(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)

	// Jump straight to in_transit, then cancel.
	_, err := env.svc.Advance(context.Background(), req.ID, AdvanceInput{NewStatus: domain.StatusInTransit})
	require.NoError(t, err)
	updated, err := env.svc.Advance(context.Background(), req.ID, AdvanceInput{NewStatus: domain.StatusCancelled})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, updated.Status)
	require.Len(t, updated.Steps, 3)
	assert.Equal(t, "Annulé", updated.Steps[2].Title)
}

// TestTransportService_Advance_CustomTitle verifies the staff title override
// and the description/location passthrough.
func TestTransportService_Advance_CustomTitle(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)

	updated, err := env.svc.Advance(context.Background(), req.ID, AdvanceInput{
		NewStatus:   domain.StatusInTransit,
		Title:       "Navire parti du Havre",
		Description: "Embarqué sur le MSC Aurora.",
		Location:    "Le Havre, France",
	})
	require.NoError(t, err)

	last := updated.Steps[len(updated.Steps)-1]
	assert.Equal(t, "Navire parti du Havre", last.Title)
	assert.Equal(t, "Embarqué sur le MSC Aurora.", last.Description)
	assert.Equal(t, "Le Havre, France", last.Location)
}

// TestTransportService_Advance_UnknownStatus verifies that an unrecognized
// status value is rejected before any lookup.
func TestTransportService_Advance_UnknownStatus(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)

	_, err := env.svc.Advance(context.Background(), req.ID, AdvanceInput{NewStatus: "teleported"})
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.Equal(t, 0, env.requests.appendCalls)
}

// TestTransportService_Advance_UnknownRequest verifies the not-found path.
func TestTransportService_Advance_UnknownRequest(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())

	_, err := env.svc.Advance(context.Background(), 999, AdvanceInput{NewStatus: domain.StatusQuoteSent})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

// --- Payments accrual ---

// TestTransportService_RecordAdvancePayment_Accrues verifies that confirmed
// payments sum into advance_paid without touching the status or the ledger.
func TestTransportService_RecordAdvancePayment_Accrues(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)

	require.NoError(t, env.svc.RecordAdvancePayment(context.Background(), req.ID, decimal.NewFromInt(600_000)))
	require.NoError(t, env.svc.RecordAdvancePayment(context.Background(), req.ID, decimal.NewFromInt(420_000)))

	stored := env.requests.requests[req.ID]
	assert.True(t, stored.AdvancePaid.Equal(decimal.NewFromInt(1_020_000)), "got %s", stored.AdvancePaid)
	assert.Equal(t, domain.StatusQuoteRequested, stored.Status)
	assert.Len(t, stored.Steps, 1)
}

// TestTransportService_RecordAdvancePayment_RejectsNonPositive verifies amount
// validation.
func TestTransportService_RecordAdvancePayment_RejectsNonPositive(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)

	err := env.svc.RecordAdvancePayment(context.Background(), req.ID, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	err = env.svc.RecordAdvancePayment(context.Background(), req.ID, decimal.NewFromInt(-100))
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 0, env.requests.updateCalls)
}

// --- Staff edits ---

// TestTransportService_SetFinalCost verifies the unconstrained final cost write.
func TestTransportService_SetFinalCost(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)

	updated, err := env.svc.SetFinalCost(context.Background(), req.ID, decimal.NewFromInt(3_150_000))
	require.NoError(t, err)
	require.NotNil(t, updated.FinalCost)
	assert.True(t, updated.FinalCost.Equal(decimal.NewFromInt(3_150_000)))
	// The estimate is untouched.
	assert.True(t, updated.EstimatedCost.Equal(decimal.NewFromInt(3_400_000)))
}

// TestTransportService_AssignTransporter verifies carrier assignment and the
// unknown-carrier error.
func TestTransportService_AssignTransporter(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)

	updated, err := env.svc.AssignTransporter(context.Background(), req.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, updated.TransporterID)
	assert.Equal(t, uint(7), *updated.TransporterID)

	_, err = env.svc.AssignTransporter(context.Background(), req.ID, 99)
	assert.ErrorIs(t, err, ErrTransporterNotFound)
}

// TestTransportService_UpdateNotes verifies partial note edits.
func TestTransportService_UpdateNotes(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)

	note := "Prévoir un contrôle technique à l'arrivée."
	updated, err := env.svc.UpdateNotes(context.Background(), req.ID, NotesInput{AdminNote: &note})
	require.NoError(t, err)
	assert.Equal(t, note, updated.AdminNote)
	// Untouched fields keep their value.
	assert.Equal(t, "Le dédouanement n'est pas inclus dans ce devis.", updated.CustomsNote)
}

// --- Tracking ---

// TestTransportService_Track_ColdAndWarm verifies that the first call builds
// and caches the snapshot and the second call is served from cache.
func TestTransportService_Track_ColdAndWarm(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())
	req := createdRequest(t, env)
	_, err := env.svc.Advance(context.Background(), req.ID, AdvanceInput{NewStatus: domain.StatusInTransit})
	require.NoError(t, err)

	first, err := env.svc.Track(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInTransit, first.Status)
	assert.Equal(t, 57, first.ProgressPercent)
	assert.Equal(t, 1, env.cache.putCalls)

	findsBefore := env.requests.findCalls
	second, err := env.svc.Track(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ProgressPercent, second.ProgressPercent)
	assert.Equal(t, 1, env.cache.putCalls, "warm call must not rebuild")
	assert.Equal(t, findsBefore, env.requests.findCalls)
}

// TestTransportService_Track_UnknownRequest verifies the not-found path.
func TestTransportService_Track_UnknownRequest(t *testing.T) {
	env := newTestEnv(testVehicle(catalogdomain.OriginInternational, catalogdomain.VehicleStatusAvailable), testZone())

	_, err := env.svc.Track(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
