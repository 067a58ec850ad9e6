// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds the HTTP server settings. Values resolve in three layers:
// defaults, then an optional YAML file, then environment variables.
type Config struct {
	Host    string `envconfig:"TAXONIT_HOST" yaml:"host"`
	Port    int    `envconfig:"TAXONIT_PORT" yaml:"port"`
	Dataset string `envconfig:"TAXONIT_DATASET" yaml:"dataset"`

	// MaxResults caps search responses; SuggestLimit caps suggestion
	// responses. Per-request limits may lower but never exceed them.
	MaxResults   int `envconfig:"TAXONIT_MAX_RESULTS" yaml:"max_results"`
	SuggestLimit int `envconfig:"TAXONIT_SUGGEST_LIMIT" yaml:"suggest_limit"`

	ReadTimeout     time.Duration `envconfig:"TAXONIT_READ_TIMEOUT" yaml:"-"`
	WriteTimeout    time.Duration `envconfig:"TAXONIT_WRITE_TIMEOUT" yaml:"-"`
	ShutdownTimeout time.Duration `envconfig:"TAXONIT_SHUTDOWN_TIMEOUT" yaml:"-"`
}

// DefaultConfig returns sensible server defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            8080,
		MaxResults:      50,
		SuggestLimit:    10,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}
}

// LoadConfig resolves the configuration. An empty configPath skips the file
// layer.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("%w: max_results %d", ErrInvalidConfig, c.MaxResults)
	}
	if c.SuggestLimit < 1 {
		return fmt.Errorf("%w: suggest_limit %d", ErrInvalidConfig, c.SuggestLimit)
	}
	return nil
}

// Addr returns the host:port bind address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
