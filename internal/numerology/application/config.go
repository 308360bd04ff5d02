package application

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config bounds the calculation engine. The timeline floor keeps Mahadasha
// lookups from missing for any queried year; the span cap bounds worst-case
// work per request.
type Config struct {
	DefaultYearsAhead int `yaml:"default_years_ahead"`
	TimelineYears     int `yaml:"timeline_years"`
	MaxYearSpan       int `yaml:"max_year_span"`
}

// DefaultConfig returns the standard engine limits.
func DefaultConfig() Config {
	return Config{
		DefaultYearsAhead: 100,
		TimelineYears:     120,
		MaxYearSpan:       300,
	}
}

// LoadConfig loads engine limits from yaml or env.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("NUMEROLOGY_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.DefaultYearsAhead = getenvIntDefault("NUMEROLOGY_DEFAULT_YEARS_AHEAD", cfg.DefaultYearsAhead)
	cfg.TimelineYears = getenvIntDefault("NUMEROLOGY_TIMELINE_YEARS", cfg.TimelineYears)
	cfg.MaxYearSpan = getenvIntDefault("NUMEROLOGY_MAX_YEAR_SPAN", cfg.MaxYearSpan)

	if cfg.DefaultYearsAhead <= 0 {
		return cfg, errors.New("numerology config: default_years_ahead must be positive")
	}
	if cfg.TimelineYears < cfg.DefaultYearsAhead {
		return cfg, errors.New("numerology config: timeline_years must cover default_years_ahead")
	}
	if cfg.MaxYearSpan <= 0 {
		return cfg, errors.New("numerology config: max_year_span must be positive")
	}
	return cfg, nil
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
