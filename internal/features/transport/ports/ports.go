package ports

import (
	"context"

	tariffdomain "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"
	"github.com/OTISDav/vehiculesplatform/internal/features/transport/domain"
)

// RequestRepository defines the secondary port for transport request storage.
//
// Create and AppendStep are required to be atomic: the request row and its
// step row commit together or not at all, so the ledger invariant (one step
// per status ever held, last step == current status) survives partial
// failures.
type RequestRepository interface {
	// Create persists a new request together with its first ledger step.
	Create(ctx context.Context, req *domain.Request, firstStep *domain.Step) error
	// FindByID returns the request with vehicle, zone, transporter and ordered
	// steps attached, or nil when absent.
	FindByID(ctx context.Context, id uint) (*domain.Request, error)
	// AppendStep persists the request's changed fields and appends a ledger
	// step in the same transaction.
	AppendStep(ctx context.Context, req *domain.Request, step *domain.Step) error
	// Update persists the request's changed fields without touching the ledger.
	Update(ctx context.Context, req *domain.Request) error
}

// ZoneResolver is the tariff-side collaborator the lifecycle uses at creation
// time. Implemented by the tariffs service.
type ZoneResolver interface {
	// ResolveZone finds the active zone covering a free-text country, or nil.
	ResolveZone(ctx context.Context, country string) (*tariffdomain.Zone, error)
	// AdvanceRate returns the configured advance fraction of the estimate.
	AdvanceRate() float64
}

// TrackingCache caches public tracking snapshots keyed by request ID.
type TrackingCache interface {
	// Get returns the cached snapshot, or nil on a miss.
	Get(ctx context.Context, requestID uint) (*domain.TrackingSnapshot, error)
	// Put stores a snapshot for the configured TTL.
	Put(ctx context.Context, snapshot *domain.TrackingSnapshot) error
	// Invalidate drops the cached snapshot after a mutation.
	Invalidate(ctx context.Context, requestID uint) error
}
