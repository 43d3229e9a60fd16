package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the YAML configuration file. All fields are
// optional; values set on the command line take precedence.
type FileConfig struct {
	AdbPath              string        `yaml:"adb_path"`
	Interface            string        `yaml:"interface"`
	ConnectAttempts      int           `yaml:"connect_attempts"`
	ConnectBackoff       time.Duration `yaml:"connect_backoff"`
	OpportunisticBackoff time.Duration `yaml:"opportunistic_backoff"`
	ReconnectOnReappear  *bool         `yaml:"reconnect_on_reappear"`
	LogLevel             string        `yaml:"log_level"`
	CaptureFile          string        `yaml:"capture_file"`
	QRPNGFile            string        `yaml:"qr_png_file"`
}

// ParseFileConfig parses a configuration from YAML bytes.
func ParseFileConfig(data []byte) (*FileConfig, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if fc.ConnectAttempts < 0 {
		return nil, fmt.Errorf("connect_attempts must not be negative, got %d", fc.ConnectAttempts)
	}
	if fc.ConnectBackoff < 0 || fc.OpportunisticBackoff < 0 {
		return nil, fmt.Errorf("backoff durations must not be negative")
	}
	return &fc, nil
}

// LoadFileConfig loads a configuration file from disk.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	fc, err := ParseFileConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}
