// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load
const (
	EnvPenaltyFactor     = "GOBEAM_PENALTY_FACTOR"
	EnvInfluenceStations = "GOBEAM_INFLUENCE_STATIONS"
	EnvAddr              = "GOBEAM_ADDR"
	EnvRateLimit         = "GOBEAM_RATE_LIMIT"
	EnvRateBurst         = "GOBEAM_RATE_BURST"
)

// Config holds settings shared by the CLI and the HTTP server
type Config struct {
	PenaltyFactor     float64
	InfluenceStations int
	Addr              string
	RateLimit         float64 // requests per second per client
	RateBurst         int
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		PenaltyFactor:     1e18,
		InfluenceStations: 30,
		Addr:              ":8080",
		RateLimit:         5,
		RateBurst:         10,
	}
}

// Load reads the given .env files (".env" when none are named) if they exist
// and overlays any GOBEAM_* variables on the defaults. Variables already set
// in the process environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, name := range files {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", name, err)
		}
	}

	cfg := Default()
	var err error
	if cfg.PenaltyFactor, err = floatEnv(EnvPenaltyFactor, cfg.PenaltyFactor); err != nil {
		return Config{}, err
	}
	if cfg.InfluenceStations, err = intEnv(EnvInfluenceStations, cfg.InfluenceStations); err != nil {
		return Config{}, err
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if cfg.RateLimit, err = floatEnv(EnvRateLimit, cfg.RateLimit); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst, err = intEnv(EnvRateBurst, cfg.RateBurst); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the solver or server cannot use
func (c Config) Validate() error {
	switch {
	case c.PenaltyFactor <= 0:
		return fmt.Errorf("%s must be positive, got %g", EnvPenaltyFactor, c.PenaltyFactor)
	case c.InfluenceStations <= 0:
		return fmt.Errorf("%s must be positive, got %d", EnvInfluenceStations, c.InfluenceStations)
	case c.RateLimit <= 0:
		return fmt.Errorf("%s must be positive, got %g", EnvRateLimit, c.RateLimit)
	case c.RateBurst <= 0:
		return fmt.Errorf("%s must be positive, got %d", EnvRateBurst, c.RateBurst)
	}
	return nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
