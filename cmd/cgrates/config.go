package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/volodya-nrg/cgrates/pkg/cgrates"
)

type config struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	Log      logConfig     `yaml:"log"`
	TLS      tlsConfig     `yaml:"tls"`
}

type logConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type tlsConfig struct {
	Enabled bool   `yaml:"enabled"`
	CA      string `yaml:"ca"`
	Cert    string `yaml:"cert"`
	Key     string `yaml:"key"`
}

func defaultConfig() config {
	return config{
		Timeout: cgrates.DefaultTimeout,
		Log: logConfig{
			Level: "info",
		},
	}
}

// loadConfig: значения по умолчанию, затем файл (если задан), затем env.
func loadConfig(path string, getenv func(string) string) (config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config{}, fmt.Errorf("failed to read config (%s): %w", path, err)
		}

		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return config{}, fmt.Errorf("failed to parse config (%s): %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg, getenv); err != nil {
		return config{}, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("CGRATES_ENDPOINT")); v != "" {
		cfg.Endpoint = v
	}

	if v := strings.TrimSpace(getenv("CGRATES_TIMEOUT")); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("failed to parse CGRATES_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if v := strings.TrimSpace(getenv("CGRATES_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}

	return nil
}

// parseTimeout принимает "5s" или число миллисекунд.
func parseTimeout(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", v, err)
	}

	return d, nil
}
