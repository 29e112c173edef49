// Package config reads service settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/alert"
)

type Config struct {
	// HTTP
	Port string

	// MongoDB
	MongoURI     string
	MongoDB      string
	StoreTimeout time.Duration

	// Auth
	JWTSecret       string
	JWTExpiry       time.Duration
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// Notifications. Empty broker or address disables the listener.
	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string
	MQTTQoS         byte
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisChannel    string

	// Logging
	LogLevel  string
	LogFormat string

	Thresholds alert.Thresholds
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	defaults := alert.DefaultThresholds()
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "transit_fleet"),
		StoreTimeout:    getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiry:       getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),
		MQTTBroker:      os.Getenv("MQTT_BROKER"),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "transit-fleet"),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "transit/alerts"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisChannel:    getEnv("REDIS_CHANNEL", "fleet:alerts"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		Thresholds: alert.Thresholds{
			Brakes:              getEnvFloat("THRESHOLD_BRAKES", defaults.Brakes),
			Wheels:              getEnvFloat("THRESHOLD_WHEELS", defaults.Wheels),
			AxleBearings:        getEnvFloat("THRESHOLD_AXLE_BEARINGS", defaults.AxleBearings),
			FuelLevel:           getEnvFloat("THRESHOLD_FUEL_LEVEL", defaults.FuelLevel),
			EmissionCheck:       getEnvFloat("THRESHOLD_EMISSION_CHECK", defaults.EmissionCheck),
			OilChange:           getEnvFloat("THRESHOLD_OIL_CHANGE", defaults.OilChange),
			ElectricalComponent: getEnvFloat("THRESHOLD_ELECTRICAL_COMPONENT", defaults.ElectricalComponent),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	qos := getEnvInt("MQTT_QOS", 1)
	if qos < 0 || qos > 2 {
		return nil, fmt.Errorf("MQTT_QOS must be 0, 1 or 2, got %d", qos)
	}
	cfg.MQTTQoS = byte(qos)
	return cfg, nil
}

// ConfigureLogging applies the level and format to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
