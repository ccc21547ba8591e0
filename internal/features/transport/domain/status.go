package domain

// Status represents the lifecycle stage of a transport request.
//
// Staff may set any known status at any time; the system reacts by appending
// a tracking step, it does not police transition legality. The canonical
// order below only drives display and progress derivation.
type Status string

const (
	StatusQuoteRequested Status = "quote_requested"
	StatusQuoteSent      Status = "quote_sent"
	StatusAdvancePaid    Status = "advance_paid"
	StatusLoading        Status = "loading"
	StatusInTransit      Status = "in_transit"
	StatusArrivedPort    Status = "arrived_port"
	StatusCustoms        Status = "customs"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// StatusOrder is the canonical nine-state progression. The two terminal states
// (delivered, cancelled) close the list.
var StatusOrder = []Status{
	StatusQuoteRequested,
	StatusQuoteSent,
	StatusAdvancePaid,
	StatusLoading,
	StatusInTransit,
	StatusArrivedPort,
	StatusCustoms,
	StatusDelivered,
	StatusCancelled,
}

var statusLabels = map[Status]string{
	StatusQuoteRequested: "Devis demandé",
	StatusQuoteSent:      "Devis envoyé au client",
	StatusAdvancePaid:    "Avance payée",
	StatusLoading:        "Chargement en cours",
	StatusInTransit:      "En transit",
	StatusArrivedPort:    "Arrivé au port de Lomé",
	StatusCustoms:        "En dédouanement",
	StatusDelivered:      "Livré au client",
	StatusCancelled:      "Annulé",
}

// Valid reports whether s is one of the nine known statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the client-facing French label, falling back to the raw value.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Position returns the index of s within the canonical order. An unknown
// status maps to 0.
func (s Status) Position() int {
	for i, candidate := range StatusOrder {
		if candidate == s {
			return i
		}
	}
	return 0
}
