package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // chat-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Postgres struct {
	DSN             string `yaml:"dsn"`
	MaxConns        int32  `yaml:"maxConns"`
	MinConns        int32  `yaml:"minConns"`
	MaxConnLifetime string `yaml:"maxConnLifetime"` // "1h"
	MaxConnIdleTime string `yaml:"maxConnIdleTime"` // "30m"
}

type Redis struct {
	Addr     string `yaml:"addr"` // пусто — presence живёт только в базе
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Chat struct {
	MaxContentLen int    `yaml:"maxContentLen"`
	PresenceTTL   string `yaml:"presenceTTL"` // "60s"
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Chat     Chat     `yaml:"chat"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	// установка дефолтов, если значения не указаны
	if c.Logging.Service == "" {
		c.Logging.Service = "chat-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if c.Chat.MaxContentLen <= 0 {
		c.Chat.MaxContentLen = 4000
	}
	return nil
}

func (c *Postgres) ConnLifetime() time.Duration {
	return parseDurationOr(time.Hour, c.MaxConnLifetime)
}

func (c *Postgres) ConnIdleTime() time.Duration {
	return parseDurationOr(30*time.Minute, c.MaxConnIdleTime)
}

func (c *Chat) PresenceTTLDuration() time.Duration {
	return parseDurationOr(60*time.Second, c.PresenceTTL)
}

// helper для парсинга timeout-ов
func parseDurationOr(def time.Duration, s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
