package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string `yaml:"version" json:"version" env:"-"`

	Server  Server  `yaml:"server" json:"server"`
	Data    Data    `yaml:"data" json:"data"`
	Balance Balance `yaml:"balance" json:"balance"`

	// Difficulty preset applied before per-field overrides: "", "casual", "hard".
	Difficulty string `yaml:"difficulty" json:"difficulty" env:"LEVELUP_DIFFICULTY"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr" env:"LEVELUP_ADDR"`
}

type Data struct {
	Dir         string `yaml:"dir" json:"dir" env:"LEVELUP_DATA_DIR"`
	TelemetryDB string `yaml:"telemetry_db" json:"telemetry_db" env:"LEVELUP_TELEMETRY_DB"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Server:  Server{Addr: ":8173"},
		Data:    Data{Dir: "data", TelemetryDB: ""},
		Balance: DefaultBalance(),
	}
}

func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = d.Server.Addr
	}
	if strings.TrimSpace(c.Data.Dir) == "" {
		c.Data.Dir = d.Data.Dir
	}
	switch strings.ToLower(strings.TrimSpace(c.Difficulty)) {
	case "casual":
		c.Balance = CasualBalance()
	case "hard":
		c.Balance = HardBalance()
	default:
		c.Balance.applyDefaults()
	}
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults (plus env overrides) are used instead.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := applyEnv(cfg); err != nil {
				return nil, err
			}
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	if err := applyEnv(&r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
