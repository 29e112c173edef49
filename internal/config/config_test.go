package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/transit-fleet/internal/alert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "transit_fleet", cfg.MongoDB)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, byte(1), cfg.MQTTQoS)
	assert.Empty(t, cfg.MQTTBroker)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, alert.DefaultThresholds(), cfg.Thresholds)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("THRESHOLD_BRAKES", "80")
	t.Setenv("THRESHOLD_FUEL_LEVEL", "not-a-number")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 80.0, cfg.Thresholds.Brakes)
	assert.Equal(t, 100.0, cfg.Thresholds.FuelLevel)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-file\nMONGO_DB=fleet_env\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("MONGO_DB", "")
	os.Unsetenv("MONGO_DB")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "fleet_env", cfg.MongoDB)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MQTT_QOS", "5")
	_, err = Load()
	assert.ErrorContains(t, err, "MQTT_QOS")
}

func TestLoad_MQTTQoSRange(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")

	tests := []struct {
		value   string
		want    byte
		wantErr bool
	}{
		{value: "0", want: 0},
		{value: "2", want: 2},
		{value: "3", wantErr: true},
		{value: "256", wantErr: true},
		{value: "257", wantErr: true},
		{value: "-1", wantErr: true},
		{value: "-255", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("MQTT_QOS", tt.value)
			cfg, err := Load()
			if tt.wantErr {
				assert.ErrorContains(t, err, "MQTT_QOS")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.MQTTQoS)
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	cfg.ConfigureLogging()
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	cfg = &Config{LogLevel: "chatty", LogFormat: "text"}
	cfg.ConfigureLogging()
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
