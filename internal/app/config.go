package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/beebsbench/internal/logging"
)

// Config holds everything the command line can set. Pointer fields are nil
// when the flag was not given, so a run file may supply them instead.
type Config struct {
	TopDir   string
	BeebsDir string
	RunFile  string

	Arches  []string
	Configs []string

	// Per-architecture overrides keyed by architecture name.
	BuildDirs   map[string]string
	InstallDirs map[string]string

	KeepGoing *bool
	Jobs      *int

	LogLevel  string
	LogFormat string
}

// NewConfig validates cfg and returns a copy with defaults filled in.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TopDir == "" {
		return nil, errors.New("TopDir is a required configuration field and cannot be empty")
	}
	if cfg.Jobs != nil && *cfg.Jobs < 1 {
		return nil, fmt.Errorf("jobs must be at least 1, got %d", *cfg.Jobs)
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "auto"
	case "auto", "text", "json":
		// valid
	default:
		return nil, errors.New("invalid log-format: must be 'auto', 'text' or 'json'")
	}

	return &cfg, nil
}
