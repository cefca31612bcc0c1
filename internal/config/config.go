package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level
	LogFile     string

	// RedisURL enables the Redis analytics sink when set.
	RedisURL string

	Passcode string

	Stage1Tick time.Duration // typewriter interval at the gate
	Stage2Tick time.Duration // typewriter interval in the antechamber
	HintPeriod time.Duration
	NagPeriod  time.Duration

	GeoURL     string
	GeoTimeout time.Duration

	// ShareURL is appended to the share text after a win.
	ShareURL string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     getEnv("LOG_FILE", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		Passcode:    getEnv("PASSCODE", "PHC-CYBER-2025"),
		Stage1Tick:  getDuration("STAGE1_TICK", 35*time.Millisecond),
		Stage2Tick:  getDuration("STAGE2_TICK", 30*time.Millisecond),
		HintPeriod:  getDuration("HINT_PERIOD", 20*time.Second),
		NagPeriod:   getDuration("NAG_PERIOD", 10*time.Second),
		GeoURL:      getEnv("GEO_URL", "https://ipapi.co/json/"),
		GeoTimeout:  getDuration("GEO_TIMEOUT", 3*time.Second),
		ShareURL:    getEnv("SHARE_URL", ""),
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Passcode) == "" {
		errs = append(errs, errors.New("PASSCODE cannot be empty"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT cannot be empty"))
	}
	for name, d := range map[string]time.Duration{
		"STAGE1_TICK": c.Stage1Tick,
		"STAGE2_TICK": c.Stage2Tick,
		"HINT_PERIOD": c.HintPeriod,
		"NAG_PERIOD":  c.NagPeriod,
		"GEO_TIMEOUT": c.GeoTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, d))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go duration strings ("35ms", "20s"). Unparseable
// values become zero so Validate can report them.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}
