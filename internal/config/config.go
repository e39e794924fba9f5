package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/anthropics/timeline-engine/internal/domain"
)

// Config holds the engine's runtime configuration.
type Config struct {
	DBPath             string `json:"db_path"`
	ListenAddr         string `json:"listen_addr"`
	DefaultIterations  int    `json:"default_iterations"`
	MinIterations      int    `json:"min_iterations"`
	SimWorkers         int    `json:"sim_workers"`
	WorkWeekHours      int    `json:"work_week_hours"`
	InfraMonthlyUSD    float64 `json:"infra_monthly_usd"`

	// HourlyRates optionally overrides the built-in rate table,
	// keyed by role then tier.
	HourlyRates map[string]map[string]float64 `json:"hourly_rates"`
}

// Load reads a JSON config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a config with all defaults applied and no DB path set.
// Used by callers embedding the engine without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":9810"
	}
	if c.DefaultIterations == 0 {
		c.DefaultIterations = 1000
	}
	if c.MinIterations == 0 {
		c.MinIterations = 100
	}
	if c.SimWorkers == 0 {
		c.SimWorkers = runtime.GOMAXPROCS(0)
		if c.SimWorkers > 8 {
			c.SimWorkers = 8
		}
	}
	if c.WorkWeekHours == 0 {
		c.WorkWeekHours = 40
	}
	if c.InfraMonthlyUSD == 0 {
		c.InfraMonthlyUSD = 500
	}
}

func (c *Config) validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "db_path is required")
	}
	if c.DefaultIterations < c.MinIterations {
		problems = append(problems, "default_iterations must be >= min_iterations")
	}
	if c.SimWorkers < 1 {
		problems = append(problems, "sim_workers must be positive")
	}
	for role, tiers := range c.HourlyRates {
		for tier, rate := range tiers {
			if rate <= 0 {
				problems = append(problems, fmt.Sprintf("hourly_rates[%s][%s] must be positive", role, tier))
			}
		}
	}

	if len(problems) > 0 {
		return &domain.EngineError{
			Code:    domain.ErrConfigInvalid.Code,
			Message: fmt.Sprintf("%s: %v", domain.ErrConfigInvalid.Message, problems),
		}
	}
	return nil
}
