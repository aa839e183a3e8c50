package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wxdash/weather-dashboard/internal/summary"
	"github.com/wxdash/weather-dashboard/internal/weather"
)

// keyPrefix matches the layout consumers of the bucket already expect.
const keyPrefix = "weather-data"

// Document is the persisted per-city object: the record's fields plus the
// resolved summary. One document is written per (city, run); there is no
// update or delete path.
type Document struct {
	City          string    `json:"city"`
	Temperature   float64   `json:"temperature"`
	FeelsLike     float64   `json:"feels_like"`
	Humidity      float64   `json:"humidity"`
	Condition     string    `json:"condition"`
	Summary       string    `json:"summary"`
	SummarySource string    `json:"summary_source"`
	GeneratedAt   time.Time `json:"generated_at"`
	RunID         string    `json:"run_id,omitempty"`
}

// Writer serializes records and uploads them through an ObjectStore.
type Writer struct {
	store ObjectStore

	// now is swappable so tests can pin key timestamps.
	now func() time.Time
}

func NewWriter(store ObjectStore) *Writer {
	return &Writer{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ObjectKey builds the deterministic key for a city at a point in time.
// Second granularity: rerunning the same city within one second overwrites,
// which is accepted.
func ObjectKey(city string, t time.Time) string {
	return fmt.Sprintf("%s/%s-%s.json", keyPrefix, city, t.UTC().Format("20060102-150405"))
}

// Store uploads the combined record and summary, returning the object key.
func (w *Writer) Store(ctx context.Context, rec weather.Record, sum summary.Summary, runID string) (string, error) {
	generatedAt := w.now()

	doc := Document{
		City:          rec.City,
		Temperature:   rec.Temperature,
		FeelsLike:     rec.FeelsLike,
		Humidity:      rec.Humidity,
		Condition:     rec.Condition,
		Summary:       sum.Text,
		SummarySource: sum.Source,
		GeneratedAt:   generatedAt,
		RunID:         runID,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: marshal document for %s: %v", ErrStorage, rec.City, err)
	}

	key := ObjectKey(rec.City, generatedAt)
	if err := w.store.Put(ctx, key, body, "application/json"); err != nil {
		return "", err
	}
	return key, nil
}
