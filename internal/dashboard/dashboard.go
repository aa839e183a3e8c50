package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wxdash/weather-dashboard/internal/storage"
	"github.com/wxdash/weather-dashboard/internal/summary"
	"github.com/wxdash/weather-dashboard/internal/weather"
)

// DefaultCities is used when the caller supplies no cities.
var DefaultCities = []string{"Philadelphia", "Seattle", "New York"}

// ErrNoData is returned by Latest when a city has no stored result yet.
var ErrNoData = errors.New("no weather data for city")

// CityResult is the latest successful pipeline output for one city.
type CityResult struct {
	Record   weather.Record  `json:"record"`
	Summary  summary.Summary `json:"summary"`
	Key      string          `json:"key"`
	StoredAt time.Time       `json:"stored_at"`
}

// Outcome records how one city fared during a run.
type Outcome struct {
	City string
	Key  string
	Err  error
}

// Report aggregates per-city outcomes for one run, in input order.
type Report struct {
	RunID    string
	Outcomes []Outcome
}

// Failed returns the number of cities that did not make it through storage.
func (r Report) Failed() int {
	var n int
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// ExitCode is 0 when every city succeeded and 1 on any partial or total
// failure.
func (r Report) ExitCode() int {
	if r.Failed() > 0 {
		return 1
	}
	return 0
}

// Service runs the per-city fetch → summarize → store pipeline and retains
// the latest result per city for the serve-mode API.
type Service struct {
	provider weather.Provider
	llm      summary.Client // nil when no LLM is configured
	writer   *storage.Writer

	mu     sync.RWMutex
	latest map[string]CityResult
}

func NewService(provider weather.Provider, llm summary.Client, writer *storage.Writer) *Service {
	return &Service{
		provider: provider,
		llm:      llm,
		writer:   writer,
		latest:   make(map[string]CityResult),
	}
}

// Run processes the cities sequentially, in order. A city's failure is
// logged and does not stop the batch.
func (s *Service) Run(ctx context.Context, cities []string) Report {
	report := Report{
		RunID:    uuid.NewString(),
		Outcomes: make([]Outcome, 0, len(cities)),
	}

	for _, city := range cities {
		report.Outcomes = append(report.Outcomes, s.processCity(ctx, city, report.RunID))
	}

	if failed := report.Failed(); failed > 0 {
		log.Printf("run %s finished: %d/%d cities failed", report.RunID, failed, len(cities))
	}
	return report
}

func (s *Service) processCity(ctx context.Context, city, runID string) Outcome {
	rec, err := s.provider.Fetch(ctx, city)
	if err != nil {
		log.Printf("%s: fetch failed (%s): %v", city, weather.Kind(err), err)
		return Outcome{City: city, Err: err}
	}

	// Summarize never fails; LLM errors resolve to the fallback template.
	sum := summary.Summarize(ctx, s.llm, rec)

	key, err := s.writer.Store(ctx, rec, sum, runID)
	if err != nil {
		log.Printf("%s: store failed: %v", city, err)
		return Outcome{City: city, Err: err}
	}

	log.Printf("%s: %.1f°F (feels like %.1f°F), humidity %.0f%%, %s. %s [%s]",
		rec.City, rec.Temperature, rec.FeelsLike, rec.Humidity, rec.Condition, sum.Text, key)

	s.mu.Lock()
	s.latest[city] = CityResult{
		Record:   rec,
		Summary:  sum,
		Key:      key,
		StoredAt: time.Now().UTC(),
	}
	s.mu.Unlock()

	return Outcome{City: city, Key: key}
}

// Latest returns the most recent successful result for a city, as requested
// on the command line (not the provider's display name).
func (s *Service) Latest(city string) (CityResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.latest[city]
	if !ok {
		return CityResult{}, ErrNoData
	}
	return res, nil
}
