package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World      WorldConfig      `toml:"world"`
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
}

type WorldConfig struct {
	Width    int  `toml:"width"`     // cells
	Height   int  `toml:"height"`    // cells
	CellSize int  `toml:"cell_size"` // pixels per cell
	Wrap     bool `toml:"wrap"`      // toroidal location policy
}

type SimulationConfig struct {
	Steps       int           `toml:"steps"`     // 0 = run until interrupted
	TickRate    time.Duration `toml:"tick_rate"` // 0 = run steps back to back
	Scenario    string        `toml:"scenario"`
	ScriptsDir  string        `toml:"scripts_dir"`
	ReportEvery int           `toml:"report_every"` // steps between stat lines, 0 = off
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			Width:    40,
			Height:   30,
			CellSize: 32,
			Wrap:     false,
		},
		Simulation: SimulationConfig{
			Steps:       0,
			TickRate:    50 * time.Millisecond,
			Scenario:    "data/scenario.yaml",
			ScriptsDir:  "scripts",
			ReportEvery: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
