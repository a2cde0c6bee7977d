package db

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // zoneinfo のないコンテナでも library.timezone を解決する

	"gopkg.in/yaml.v3"
)

const (
	ModeDev     = "dev"
	ModeRelease = "release"

	defaultAddr     = ":8080"
	defaultDriver   = DriverSQLite
	defaultPath     = "library.db"
	defaultTimezone = "UTC"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"` // sqlite3 のみ
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type LibraryConfig struct {
	Timezone string `yaml:"timezone"`
	Seed     *bool  `yaml:"seed"`
}

type Config struct {
	Version     string         `yaml:"version"`
	Mode        string         `yaml:"mode"`
	Server      ServerConfig   `yaml:"server"`
	DB          DatabaseConfig `yaml:"database"`
	Certificate Certs          `yaml:"certificate"`
	Library     LibraryConfig  `yaml:"library"`
}

func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LIBRARY_DB_DRIVER"); v != "" {
		c.DB.Driver = v
	}
	if v := os.Getenv("LIBRARY_DB_HOST"); v != "" {
		c.DB.Host = v
	}
	if v := os.Getenv("LIBRARY_DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.DB.Port = p
		}
	}
	if v := os.Getenv("LIBRARY_DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDev
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.DB.Driver == "" {
		c.DB.Driver = defaultDriver
	}
	if c.DB.Driver == DriverSQLite && c.DB.Path == "" {
		c.DB.Path = defaultPath
	}
	if c.Library.Timezone == "" {
		c.Library.Timezone = defaultTimezone
	}
}

func (c *Config) Validate() error {
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDev, ModeRelease, c.Mode)
	}
	switch c.DB.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres, DriverPgx:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DB.Driver)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// SeedEnabled は library.seed 未指定なら true
func (c *Config) SeedEnabled() bool {
	return c.Library.Seed == nil || *c.Library.Seed
}

// TLSEnabled は cert/key 両方が指定されているときだけ true
func (c *Config) TLSEnabled() bool {
	return c.Certificate.Cert != "" && c.Certificate.Key != ""
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Library.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid library.timezone %q: %w", c.Library.Timezone, err)
	}
	return loc, nil
}
