package models

// ItemKind distinguishes the two bookable collections served by the upstream
// aggregator. Sessions and events share a shape but are fetched, discounted and
// booked through kind-specific endpoints and payloads.
type ItemKind string

const (
	KindSession ItemKind = "session"
	KindEvent   ItemKind = "event"
)

// BookableItem is a class session or an event as presented to the checkout
// flow. Items are read-only on this side: slot counts are server-authoritative
// and refreshed on the next fetch, never decremented optimistically.
type BookableItem struct {
	Kind           ItemKind `json:"kind"`
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	BasePrice      float64  `json:"basePrice"`
	AvailableSlots int      `json:"availableSlots"`
	StudioID       string   `json:"studioId"`
	// ClassID and ClassType are set for sessions only.
	ClassID   string `json:"classId,omitempty"`
	ClassType string `json:"classType,omitempty"`
}

// Bookable reports whether the item can still be booked.
func (i BookableItem) Bookable() bool {
	return i.AvailableSlots > 0
}
