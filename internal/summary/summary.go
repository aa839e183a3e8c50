package summary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/wxdash/weather-dashboard/internal/weather"
)

// Sources a summary can come from.
const (
	SourceOpenAI    = "openai"
	SourceAnthropic = "anthropic"
	SourceFallback  = "fallback"
)

// Summary is the resolved description for a record: either a model-generated
// sentence or the deterministic fallback. It is always valid; LLM failures
// never escape this package.
type Summary struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Client abstracts a language-model backend that can describe a reading.
type Client interface {
	Name() string
	Describe(ctx context.Context, rec weather.Record) (string, error)
}

const systemPrompt = `You are a weather reporter. Given current weather readings, write one short, friendly sentence describing the conditions. Mention the city and the conditions. Respond with the sentence only, no JSON, no quotes.`

func userPrompt(rec weather.Record) string {
	return fmt.Sprintf(
		"City: %s\nTemperature: %.1f°F\nFeels like: %.1f°F\nHumidity: %.0f%%\nConditions: %s",
		rec.City, rec.Temperature, rec.FeelsLike, rec.Humidity, rec.Condition,
	)
}

// Summarize produces a summary for the record. A nil client, a client error,
// or an empty response all degrade to the fallback template.
func Summarize(ctx context.Context, client Client, rec weather.Record) Summary {
	if client != nil {
		text, err := client.Describe(ctx, rec)
		if err != nil {
			log.Printf("summary: %s describe failed for %s, using fallback: %v", client.Name(), rec.City, err)
		} else if strings.TrimSpace(text) != "" {
			return Summary{Text: strings.TrimSpace(text), Source: client.Name()}
		}
	}
	return Summary{Text: Fallback(rec), Source: SourceFallback}
}

// Fallback builds the deterministic template sentence. It cannot fail and is
// never empty.
func Fallback(rec weather.Record) string {
	return fmt.Sprintf(
		"In %s, it is %.1f°F and %s. It feels like %.1f°F with %.0f%% humidity.",
		rec.City, rec.Temperature, rec.Condition, rec.FeelsLike, rec.Humidity,
	)
}
