package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wxdash/weather-dashboard/internal/weather"
)

type stubClient struct {
	text string
	err  error
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Describe(ctx context.Context, rec weather.Record) (string, error) {
	return s.text, s.err
}

func testRecord() weather.Record {
	return weather.Record{
		City:        "Philadelphia",
		Temperature: 20,
		FeelsLike:   18,
		Humidity:    50,
		Condition:   "Clear",
		Timestamp:   time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}
}

func TestSummarizeUnconfigured(t *testing.T) {
	s := Summarize(context.Background(), nil, testRecord())

	assert.Equal(t, SourceFallback, s.Source)
	assert.NotEqual(t, "", s.Text)
	assert.Contains(t, s.Text, "Philadelphia")
	assert.Contains(t, s.Text, "Clear")
}

func TestSummarizeClientFailure(t *testing.T) {
	client := &stubClient{err: errors.New("boom")}

	s := Summarize(context.Background(), client, testRecord())

	assert.Equal(t, SourceFallback, s.Source)
	assert.NotEqual(t, "", s.Text)
}

func TestSummarizeClientEmptyResponse(t *testing.T) {
	client := &stubClient{text: "   "}

	s := Summarize(context.Background(), client, testRecord())

	assert.Equal(t, SourceFallback, s.Source)
	assert.NotEqual(t, "", s.Text)
}

func TestSummarizeClientSuccess(t *testing.T) {
	client := &stubClient{text: " A beautiful clear day in Philadelphia. "}

	s := Summarize(context.Background(), client, testRecord())

	assert.Equal(t, "stub", s.Source)
	assert.Equal(t, "A beautiful clear day in Philadelphia.", s.Text)
}

func TestFallbackIncludesAllFields(t *testing.T) {
	text := Fallback(testRecord())

	assert.Contains(t, text, "Philadelphia")
	assert.Contains(t, text, "20.0°F")
	assert.Contains(t, text, "18.0°F")
	assert.Contains(t, text, "50%")
	assert.Contains(t, text, "Clear")
}
