package models

import "time"

// Lookup outcomes recorded for analytics.
const (
	LookupResolved = "resolved"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

// LookupEvent records one market-value request.
type LookupEvent struct {
	RequestID  string    `json:"requestId"`
	VehicleID  string    `json:"vehicleId"`
	Year       string    `json:"year"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Trim       string    `json:"trim,omitempty"`
	Provider   string    `json:"provider,omitempty"`
	Price      int64     `json:"price,omitempty"`
	Outcome    string    `json:"outcome"`
	DurationMs int64     `json:"durationMs"`
	OccurredAt time.Time `json:"occurredAt"`
}
