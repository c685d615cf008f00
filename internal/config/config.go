package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type API struct {
	BaseURL string        `yaml:"API_BASE_URL" env:"API_BASE_URL" env-default:"http://localhost:5000/api"`
	Timeout time.Duration `yaml:"API_TIMEOUT" env:"API_TIMEOUT" env-default:"15s"`
}

type State struct {
	// Backend selects where the session and cart records are persisted.
	Backend string `yaml:"STATE_BACKEND" env:"STATE_BACKEND" env-default:"sqlite"`
	Path    string `yaml:"STATE_PATH" env:"STATE_PATH" env-default:"agrihub.db"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Telemetry struct {
	// OTLP/HTTP endpoint for traces; tracing stays disabled when empty.
	Endpoint string `yaml:"OTLP_ENDPOINT" env:"OTLP_ENDPOINT" env-default:""`
}

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-default:"local"`
	API          API          `yaml:"api"`
	State        State        `yaml:"state"`
	RedisConnect RedisConnect `yaml:"redis"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

// LoadConfigFromPath reads the YAML file at path with environment
// overrides applied. An empty path loads from environment and defaults
// alone, which is the common case for a client install.
func LoadConfigFromPath(path string) (*Config, error) {

	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("can not read config from environment: %w", err)
		}

		return &cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("%s", err.Error())
	}

	return cfg
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
