package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"mortgagesim/internal/domain"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration. Command line flags take precedence
// over these values.
type Config struct {
	Env          string        `env:"MORTGAGESIM_ENV" envDefault:"prod"`
	DataPath     string        `env:"MORTGAGESIM_DATA" envDefault:"data/market_data.csv"`
	ScenarioPath string        `env:"MORTGAGESIM_SCENARIO"`
	Concurrency  int           `env:"MORTGAGESIM_CONCURRENCY" envDefault:"1"`
	RedisAddr    string        `env:"MORTGAGESIM_REDIS_ADDR"`
	CacheTTL     time.Duration `env:"MORTGAGESIM_CACHE_TTL" envDefault:"168h"`
	OutputPath   string        `env:"MORTGAGESIM_OUTPUT"`
	Verbose      bool          `env:"MORTGAGESIM_VERBOSE"`
}

// Load reads the optional env files (".env" when none are given) into the
// process environment and parses it. Variables already set win.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &cfg, nil
}

// LoadScenario reads a scenario document. An empty path yields the default
// scenario.
func LoadScenario(path string) (domain.Scenario, error) {
	if path == "" {
		return domain.DefaultScenario().Clean(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("could not read scenario: %w", err)
	}
	return ParseScenario(b)
}

// ParseScenario overlays the YAML document on the default scenario and
// cleans the result. Unknown keys are rejected.
func ParseScenario(b []byte) (domain.Scenario, error) {
	scenario := domain.DefaultScenario()

	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil && !errors.Is(err, io.EOF) {
		return domain.Scenario{}, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return scenario.Clean(), nil
}

func MarshalScenario(scenario domain.Scenario) ([]byte, error) {
	b, err := yaml.Marshal(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario: %w", err)
	}
	return b, nil
}
