// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Session SessionConfig `toml:"session"`
	Chart   ChartConfig   `toml:"chart"`
	History HistoryConfig `toml:"history"`
}

// SessionConfig maps default values for starting a session.
type SessionConfig struct {
	Location   *string `toml:"location"`
	Technique  *string `toml:"technique"`
	LeadWeight *string `toml:"lead-weight"`
	RodModel   *string `toml:"rod-model"`
	Reel       *string `toml:"reel"`
	Line       *string `toml:"line"`
}

// ChartConfig maps trend chart options.
type ChartConfig struct {
	Height *int `toml:"height"`
	Width  *int `toml:"width"`
}

// HistoryConfig maps session list options.
type HistoryConfig struct {
	Sort *string `toml:"sort"`
	Days *int    `toml:"days"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
