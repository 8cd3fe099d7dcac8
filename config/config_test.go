package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	config, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8288, config.ServerPort)
	assert.Equal(t, "data/coutupro.db", config.DatabaseDbPath)
	assert.Equal(t, 5*time.Minute, config.DashboardCacheTTL)
	assert.Equal(t, "0 8 * * *", config.AlertSchedule)
	assert.Equal(t, 2, config.AlertHorizonDays)
	assert.False(t, config.CacheEnabled())
	assert.True(t, config.IsDevelopment())
}

func TestInitConfig_Environment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATABASE_CACHE_ADDRESS", "localhost")
	t.Setenv("DASHBOARD_CACHE_TTL", "30s")
	t.Setenv("ALERT_HORIZON_DAYS", "5")

	config, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, config.ServerPort)
	assert.Equal(t, 30*time.Second, config.DashboardCacheTTL)
	assert.Equal(t, 5, config.AlertHorizonDays)
	assert.True(t, config.CacheEnabled())
	assert.False(t, config.IsDevelopment())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "valid", config: Config{DatabaseDbPath: "x.db", AlertHorizonDays: 2}},
		{name: "no path", config: Config{}, wantErr: "DATABASE_DB_PATH"},
		{
			name:    "negative horizon",
			config:  Config{DatabaseDbPath: "x.db", AlertHorizonDays: -1},
			wantErr: "ALERT_HORIZON_DAYS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
