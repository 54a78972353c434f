// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults(t *testing.T) *Config {
	t.Helper()

	k := koanf.New(".")
	require.NoError(t, loadDefaults(k))

	c := &Config{}
	require.NoError(t, k.Unmarshal("", c))

	c.Database.URL = "postgres://localhost/app"
	c.Redis.URL = "redis://localhost:6379/0"
	return c
}

func TestDefaults(t *testing.T) {
	c := defaults(t)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 30*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, time.Minute, c.RateLimit.Window)
	assert.False(t, c.Admin.StatsEnabled)
	assert.Equal(t, "0.0.0.0:8080", c.Server.Address())
	assert.NoError(t, validate(c))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing database url", mutate: func(c *Config) { c.Database.URL = "" }},
		{name: "missing redis url", mutate: func(c *Config) { c.Redis.URL = "" }},
		{name: "wildcard origin with credentials", mutate: func(c *Config) {
			c.CORS.AllowedOrigins = []string{"*"}
			c.CORS.AllowCredentials = true
		}},
		{name: "insecure otel in production", mutate: func(c *Config) {
			c.App.Environment = "production"
			c.Otel.Enabled = true
			c.Otel.Insecure = true
		}},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }},
		{name: "negative write timeout", mutate: func(c *Config) { c.Server.WriteTimeout = -time.Second }},
		{name: "zero rate limit window", mutate: func(c *Config) { c.RateLimit.Window = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults(t)
			tt.mutate(c)
			assert.Error(t, validate(c))
		})
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "database.url", envKeyReplacer("DATABASE_URL"))
	assert.Equal(t, "admin.stats_enabled", envKeyReplacer("ADMIN_STATS_ENABLED"))
	assert.Equal(t, "", envKeyReplacer("HOME"))
}

func TestIsProduction(t *testing.T) {
	c := defaults(t)
	assert.False(t, c.IsProduction())

	c.App.Environment = "production"
	assert.True(t, c.IsProduction())
}
