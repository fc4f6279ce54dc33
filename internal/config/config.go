// Package config loads gazette configuration from YAML with flag overrides
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nainya/gazette/pkg/source"
)

// Config holds all gazette configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Source  SourceConfig  `yaml:"source"`
	PDF     PDFConfig     `yaml:"pdf"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the listeners.
type ServerConfig struct {
	Port        int `yaml:"port"`         // HTML page and JSON API
	MetricsPort int `yaml:"metrics_port"` // /metrics, /health, pprof; 0 disables
	GrpcPort    int `yaml:"grpc_port"`    // grpc.health.v1; 0 disables
}

// SourceConfig configures the upstream document API.
type SourceConfig struct {
	Endpoint          string  `yaml:"endpoint"`
	Timeout           string  `yaml:"timeout"` // Go duration, empty for none
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Strict            bool    `yaml:"strict"`
}

// PDFConfig configures static PDF downloads.
type PDFConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:        8080,
			MetricsPort: 9090,
			GrpcPort:    50051,
		},
		Source: SourceConfig{
			Endpoint: source.DefaultEndpoint,
		},
		PDF: PDFConfig{
			Dir: "documentos",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ports, the endpoint URL and the timeout.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	for name, port := range map[string]int{"server.metrics_port": c.Server.MetricsPort, "server.grpc_port": c.Server.GrpcPort} {
		if port < 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s out of range: %d", name, port))
		}
	}
	if u, err := url.Parse(c.Source.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("source.endpoint is not an absolute URL: %q", c.Source.Endpoint))
	}
	if _, err := c.Source.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if c.Source.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("source.requests_per_second is negative: %v", c.Source.RequestsPerSecond))
	}
	return errors.Join(errs...)
}

// TimeoutDuration parses the timeout. Empty means no timeout.
func (s SourceConfig) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("source.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("source.timeout is negative: %s", s.Timeout)
	}
	return d, nil
}

// ClientConfig converts the source section into a source.Config.
func (s SourceConfig) ClientConfig() source.Config {
	cfg := source.DefaultConfig()
	cfg.Endpoint = s.Endpoint
	cfg.RequestsPerSecond = s.RequestsPerSecond
	cfg.Strict = s.Strict
	if d, err := s.TimeoutDuration(); err == nil {
		cfg.Timeout = d
	}
	return cfg
}
