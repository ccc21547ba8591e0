package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DelayToConfirm is shown when no zone was resolved and staff have not quoted
// a delivery window yet.
const DelayToConfirm = "À confirmer"

// TrackingSnapshot is the flat, client-facing projection of a request and its
// ledger, served on the public tracking endpoint. Anyone holding the request
// identifier can view it; the identifier acts as a capability token.
type TrackingSnapshot struct {
	RequestID       uint   `json:"request_id"`
	VehicleTitle    string `json:"vehicle_title"`
	OriginCountry   string `json:"origin_country"`
	OriginCity      string `json:"origin_city,omitempty"`
	DestinationCity string `json:"destination_city"`

	Status          Status `json:"status"`
	StatusLabel     string `json:"status_label"`
	CurrentIndex    int    `json:"current_index"`
	ProgressPercent int    `json:"progress_percent"`
	DelayEstimate   string `json:"delay_estimate"`

	EstimatedCost   *decimal.Decimal `json:"estimated_cost,omitempty"`
	FinalCost       *decimal.Decimal `json:"final_cost,omitempty"`
	AdvanceRequired *decimal.Decimal `json:"advance_required,omitempty"`
	AdvancePaid     decimal.Decimal  `json:"advance_paid"`

	TransporterName *string `json:"transporter_name"`
	CustomsNote     string  `json:"customs_note"`
	ClientNote      string  `json:"client_note,omitempty"`

	Steps []TrackingStep `json:"steps"`
}

// TrackingStep is the display form of one ledger entry.
type TrackingStep struct {
	Status      Status    `json:"status"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	ReachedAt   time.Time `json:"reached_at"`
	IsCurrent   bool      `json:"is_current"`
}

// ProjectTracking derives the public snapshot from a request and its ledger.
// Read-only; the request is not mutated.
//
// ProgressPercent is floor(current_index / (len(StatusOrder)-2) × 100): the
// denominator excludes the two terminal states, so "delivered" lands on 100
// and "cancelled" overshoots it. This reproduces the platform's historical
// progress bar; it is an approximation, not a normalized percentage.
//
// A step is flagged current when its status equals the request's status. If a
// status was revisited (A → B → A) the ledger holds two A steps and both get
// flagged; duplicates from no-op writes never occur, so normally exactly one
// step matches.
func ProjectTracking(req *Request) TrackingSnapshot {
	steps := make([]TrackingStep, 0, len(req.Steps))
	ordered := make([]Step, len(req.Steps))
	copy(ordered, req.Steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ReachedAt.Before(ordered[j].ReachedAt)
	})

	for _, s := range ordered {
		steps = append(steps, TrackingStep{
			Status:      s.Status,
			Title:       s.Title,
			Description: s.Description,
			Location:    s.Location,
			ReachedAt:   s.ReachedAt,
			IsCurrent:   s.Status == req.Status,
		})
	}

	idx := req.Status.Position()
	denom := len(StatusOrder) - 2
	if denom < 1 {
		denom = 1
	}
	progress := idx * 100 / denom

	delay := DelayToConfirm
	if req.Zone != nil {
		delay = req.Zone.DelayDisplay()
	}

	var transporterName *string
	if req.Transporter != nil {
		name := req.Transporter.Name
		transporterName = &name
	}

	return TrackingSnapshot{
		RequestID:       req.ID,
		VehicleTitle:    req.Vehicle.Title,
		OriginCountry:   req.OriginCountry,
		OriginCity:      req.OriginCity,
		DestinationCity: req.DestinationCity,
		Status:          req.Status,
		StatusLabel:     req.Status.Label(),
		CurrentIndex:    idx,
		ProgressPercent: progress,
		DelayEstimate:   delay,
		EstimatedCost:   req.EstimatedCost,
		FinalCost:       req.FinalCost,
		AdvanceRequired: req.AdvanceRequired,
		AdvancePaid:     req.AdvancePaid,
		TransporterName: transporterName,
		CustomsNote:     req.CustomsNote,
		ClientNote:      req.ClientNote,
		Steps:           steps,
	}
}
