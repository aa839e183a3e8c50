package weather

import (
	"time"
)

// Record is the normalized current-weather reading for a single city.
// It is built once per fetch and never mutated afterwards.
type Record struct {
	// City is the display name reported by the provider, which may differ
	// in casing or spelling from the requested city.
	City string `json:"city"`

	Temperature float64 `json:"temperature"` // °F
	FeelsLike   float64 `json:"feels_like"`  // °F
	Humidity    float64 `json:"humidity"`    // percent, 0-100
	Condition   string  `json:"condition"`   // provider description text, e.g. "clear sky"

	Timestamp time.Time `json:"timestamp"` // always UTC
}
