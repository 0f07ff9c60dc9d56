package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 10, cfg.Listing.DefaultPageSize)
	assert.Equal(t, 50, cfg.Listing.MaxPageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Mutations.SubmitDelay)
	assert.Equal(t, 5*time.Minute, cfg.Confirmations.TTL)
	assert.True(t, cfg.Exports.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ENV", EnvProduction)
	v.Set("SUBMIT_DELAY", "not-a-duration")
	v.Set("CONFIRMATION_TTL", "30s")
	v.Set("DEFAULT_PAGE_SIZE", 25)
	v.Set("MAX_PAGE_SIZE", 5)
	v.Set("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	cfg := fromViper(v)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 500*time.Millisecond, cfg.Mutations.SubmitDelay)
	assert.Equal(t, 30*time.Second, cfg.Confirmations.TTL)
	assert.Equal(t, 25, cfg.Listing.DefaultPageSize)
	assert.Equal(t, 25, cfg.Listing.MaxPageSize)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}
