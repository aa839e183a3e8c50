package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("AWS_BUCKET_NAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENWEATHER_API_KEY")
	assert.Contains(t, err.Error(), "AWS_BUCKET_NAME")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "owm-key")
	t.Setenv("AWS_BUCKET_NAME", "weather-bucket")
	t.Setenv("AWS_REGION", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("FETCH_INTERVAL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "owm-key", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "weather-bucket", cfg.BucketName)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "10s", cfg.HTTPTimeout.String())
	assert.Equal(t, "15m0s", cfg.FetchInterval.String())
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadInvalidInterval(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "owm-key")
	t.Setenv("AWS_BUCKET_NAME", "weather-bucket")
	t.Setenv("FETCH_INTERVAL", "often")

	_, err := Load()
	assert.Error(t, err)
}
