package neptunes

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Config is loaded once at startup and immutable afterwards; components get
// the values they need through their constructors.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	DB     DBConfig     `toml:"db"`
	Fetch  FetchConfig  `toml:"fetch"`
	Games  []GameConfig `toml:"games"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// APIToken credentials the write endpoints. Reads stay open.
	APIToken string `toml:"api_token"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type FetchConfig struct {
	IntervalMinutes int  `toml:"interval_minutes"`
	CycleHours      int  `toml:"cycle_hours"`
	MaxConcurrent   int  `toml:"max_concurrent"`
	IngestFinished  bool `toml:"ingest_finished"`
}

// GameConfig identifies one tracked game and the provider that serves it.
type GameConfig struct {
	Number   int64  `toml:"number"`
	Code     string `toml:"code"`
	Provider string `toml:"provider"`
}

func (cfg *Config) validate() error {
	if len(cfg.Games) == 0 {
		return fmt.Errorf("no games configured, add a [[games]] entry")
	}
	for _, g := range cfg.Games {
		if g.Number == 0 {
			return fmt.Errorf("game entry missing number")
		}
		if g.Code == "" {
			return fmt.Errorf("game %d missing code", g.Number)
		}
		if g.Provider == "" {
			return fmt.Errorf("game %d missing provider", g.Number)
		}
	}
	if cfg.Fetch.IntervalMinutes <= 0 {
		cfg.Fetch.IntervalMinutes = 30
	}
	if cfg.Fetch.CycleHours <= 0 {
		cfg.Fetch.CycleHours = 24
	}
	return nil
}
