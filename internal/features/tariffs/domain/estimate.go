package domain

import "github.com/shopspring/decimal"

// UnavailableMessage is returned to the client when no active zone covers the
// requested country. The request flow still proceeds; staff quote manually.
const UnavailableMessage = "Aucune zone tarifaire ne couvre ce pays pour le moment. Contactez-nous pour un devis personnalisé."

// Estimate is the result of a transport cost simulation.
//
// When Available is false the numeric fields are zero and Message carries a
// human-readable explanation. This is a normal outcome variant, not an error.
type Estimate struct {
	Available        bool            `json:"available"`
	ZoneID           uint            `json:"zone_id,omitempty"`
	ZoneName         string          `json:"zone_name,omitempty"`
	Total            decimal.Decimal `json:"total"`
	WeightSupplement decimal.Decimal `json:"weight_supplement"`
	AdvanceRequired  decimal.Decimal `json:"advance_required"`
	DelayDaysMin     int             `json:"delay_days_min,omitempty"`
	DelayDaysMax     int             `json:"delay_days_max,omitempty"`
	Message          string          `json:"message,omitempty"`
}

// ComputeEstimate derives the transport cost figures for a zone.
//
//	weight_supplement = weight_kg × zone.price_per_kg   (0 when weight absent or ≤ 0)
//	total             = zone.base_price + weight_supplement
//	advance_required  = round(total × advanceRate)       (FCFA has no subunit)
//
// A nil zone yields the unavailable variant.
func ComputeEstimate(zone *Zone, weightKg *int, advanceRate float64) Estimate {
	if zone == nil {
		return Estimate{Available: false, Message: UnavailableMessage}
	}

	supplement := decimal.Zero
	if weightKg != nil && *weightKg > 0 {
		supplement = zone.PricePerKg.Mul(decimal.NewFromInt(int64(*weightKg)))
	}
	total := zone.BasePrice.Add(supplement)
	advance := total.Mul(decimal.NewFromFloat(advanceRate)).Round(0)

	return Estimate{
		Available:        true,
		ZoneID:           zone.ID,
		ZoneName:         zone.Name,
		Total:            total,
		WeightSupplement: supplement,
		AdvanceRequired:  advance,
		DelayDaysMin:     zone.DelayDaysMin,
		DelayDaysMax:     zone.DelayDaysMax,
	}
}
