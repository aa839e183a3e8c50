package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxdash/weather-dashboard/internal/storage"
	"github.com/wxdash/weather-dashboard/internal/weather"
)

// stubProvider serves canned records per city and records call order.
type stubProvider struct {
	records map[string]weather.Record
	errs    map[string]error
	calls   []string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Fetch(ctx context.Context, city string) (weather.Record, error) {
	p.calls = append(p.calls, city)
	if err, ok := p.errs[city]; ok {
		return weather.Record{}, err
	}
	rec, ok := p.records[city]
	if !ok {
		return weather.Record{}, fmt.Errorf("%w: %s", weather.ErrNotFound, city)
	}
	return rec, nil
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestRunSingleCitySuccess(t *testing.T) {
	captureLog(t)

	provider := &stubProvider{
		records: map[string]weather.Record{
			"Philadelphia": {
				City:        "Philadelphia",
				Temperature: 20,
				FeelsLike:   18,
				Humidity:    50,
				Condition:   "Clear",
				Timestamp:   time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
			},
		},
	}
	store := storage.NewMemoryStore()
	svc := NewService(provider, nil, storage.NewWriter(store))

	report := svc.Run(context.Background(), []string{"Philadelphia"})

	assert.Equal(t, 0, report.ExitCode())
	assert.Equal(t, 0, report.Failed())
	require.Len(t, report.Outcomes, 1)
	require.Equal(t, 1, store.Len())

	body, ok := store.Get(report.Outcomes[0].Key)
	require.True(t, ok)

	var doc storage.Document
	require.NoError(t, json.Unmarshal(body, &doc))

	assert.Equal(t, 20.0, doc.Temperature)
	assert.Equal(t, 50.0, doc.Humidity)
	assert.Equal(t, "Clear", doc.Condition)

	// LLM unconfigured: fallback summary mentioning city and condition.
	assert.Equal(t, "fallback", doc.SummarySource)
	assert.Contains(t, doc.Summary, "Philadelphia")
	assert.Contains(t, doc.Summary, "Clear")
}

func TestRunUnknownCity(t *testing.T) {
	logs := captureLog(t)

	provider := &stubProvider{
		errs: map[string]error{
			"Nowhereville": fmt.Errorf("%w: Nowhereville", weather.ErrNotFound),
		},
	}
	store := storage.NewMemoryStore()
	svc := NewService(provider, nil, storage.NewWriter(store))

	report := svc.Run(context.Background(), []string{"Nowhereville"})

	assert.Equal(t, 1, report.ExitCode())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 0, store.Len())
	assert.Contains(t, logs.String(), "Nowhereville")
	assert.Contains(t, logs.String(), "not_found")
}

func TestRunDefaultCitiesInOrder(t *testing.T) {
	captureLog(t)

	provider := &stubProvider{
		records: map[string]weather.Record{
			"Philadelphia": {City: "Philadelphia", Temperature: 71, FeelsLike: 70, Humidity: 40, Condition: "clear sky"},
			"Seattle":      {City: "Seattle", Temperature: 55, FeelsLike: 53, Humidity: 80, Condition: "light rain"},
			"New York":     {City: "New York", Temperature: 68, FeelsLike: 67, Humidity: 45, Condition: "few clouds"},
		},
	}
	store := storage.NewMemoryStore()
	svc := NewService(provider, nil, storage.NewWriter(store))

	report := svc.Run(context.Background(), DefaultCities)

	assert.Equal(t, []string{"Philadelphia", "Seattle", "New York"}, provider.calls)
	assert.Equal(t, 0, report.ExitCode())
	assert.Equal(t, 3, store.Len())
}

func TestRunContinuesPastFailures(t *testing.T) {
	captureLog(t)

	provider := &stubProvider{
		records: map[string]weather.Record{
			"Seattle": {City: "Seattle", Temperature: 55, FeelsLike: 53, Humidity: 80, Condition: "light rain"},
		},
		errs: map[string]error{
			"Philadelphia": fmt.Errorf("%w: timeout", weather.ErrTransient),
		},
	}
	store := storage.NewMemoryStore()
	svc := NewService(provider, nil, storage.NewWriter(store))

	report := svc.Run(context.Background(), []string{"Philadelphia", "Seattle"})

	assert.Equal(t, 1, report.ExitCode())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 1, store.Len())

	// Seattle was still processed after Philadelphia failed.
	require.Len(t, report.Outcomes, 2)
	assert.Error(t, report.Outcomes[0].Err)
	assert.NoError(t, report.Outcomes[1].Err)
}

func TestLatest(t *testing.T) {
	captureLog(t)

	provider := &stubProvider{
		records: map[string]weather.Record{
			"Seattle": {City: "Seattle", Temperature: 55, FeelsLike: 53, Humidity: 80, Condition: "light rain"},
		},
	}
	store := storage.NewMemoryStore()
	svc := NewService(provider, nil, storage.NewWriter(store))

	_, err := svc.Latest("Seattle")
	assert.ErrorIs(t, err, ErrNoData)

	svc.Run(context.Background(), []string{"Seattle"})

	res, err := svc.Latest("Seattle")
	require.NoError(t, err)
	assert.Equal(t, "Seattle", res.Record.City)
	assert.NotEqual(t, "", res.Key)
	assert.NotEqual(t, "", res.Summary.Text)
}
