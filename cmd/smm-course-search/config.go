package main

import (
	"errors"
	"os"
	"strconv"

	"smm-course-search/internal/query"
	"smm-course-search/lib/configutil"
)

type Config struct {
	BaseUrl           string  `json:"base_url"`
	UserAgent         string  `json:"user_agent"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	Verbose           bool    `json:"verbose"`
	// DumpDir is where fetched result pages are saved, nothing is saved when empty.
	DumpDir string `json:"dump_dir"`
	// Telemetry enables the otel exporters configured in telemetry.json5.
	Telemetry bool `json:"telemetry"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:           query.DefaultBaseUrl,
		RequestsPerSecond: 2,
		TimeoutSeconds:    30,
	}
}

// loadConfig reads config.json5 if there is one and applies the SMM_* environment
// variables on top of it.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	fromFile, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if err == nil {
		if fromFile.BaseUrl != "" {
			cfg.BaseUrl = fromFile.BaseUrl
		}
		if fromFile.UserAgent != "" {
			cfg.UserAgent = fromFile.UserAgent
		}
		if fromFile.RequestsPerSecond != 0 {
			cfg.RequestsPerSecond = fromFile.RequestsPerSecond
		}
		if fromFile.TimeoutSeconds > 0 {
			cfg.TimeoutSeconds = fromFile.TimeoutSeconds
		}
		cfg.Verbose = fromFile.Verbose
		cfg.DumpDir = fromFile.DumpDir
		cfg.Telemetry = fromFile.Telemetry
	}

	cfg.BaseUrl = configutil.EnvString("SMM_BASE_URL", cfg.BaseUrl)
	cfg.UserAgent = configutil.EnvString("SMM_USER_AGENT", cfg.UserAgent)
	cfg.DumpDir = configutil.EnvString("SMM_DUMP_DIR", cfg.DumpDir)
	if raw := configutil.EnvString("SMM_RATE_LIMIT", ""); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, err
		}
		cfg.RequestsPerSecond = rps
	}
	if configutil.EnvString("SMM_VERBOSE", "") != "" {
		cfg.Verbose = true
	}

	return cfg, nil
}
