package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// RecordsConfig points at the records store (table/filter/record API).
type RecordsConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	BaseID  string `mapstructure:"base_id"`
}

type PaymentsConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// SuccessURLBase is where checkout redirects after a completed payment;
	// the event slug is appended.
	SuccessURLBase string `mapstructure:"success_url_base"`
}

type ConferencingConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	TokenURL     string `mapstructure:"token_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WorkerConfig struct {
	Concurrency  int    `mapstructure:"concurrency"`
	ReminderCron string `mapstructure:"reminder_cron"`
	SyncCron     string `mapstructure:"sync_cron"`
}

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Records      RecordsConfig      `mapstructure:"records"`
	Payments     PaymentsConfig     `mapstructure:"payments"`
	Conferencing ConferencingConfig `mapstructure:"conferencing"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Worker       WorkerConfig       `mapstructure:"worker"`
}

var (
	mu       sync.RWMutex
	instance *Config
)

// Load reads .env (if present), config.yaml and environment overrides, and
// installs the result as the process config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 7070)
	v.SetDefault("server.env", "development")
	v.SetDefault("records.base_url", "https://api.airtable.com/v0")
	v.SetDefault("payments.base_url", "https://api.stripe.com/v1")
	v.SetDefault("payments.success_url_base", "https://example.com/events")
	v.SetDefault("conferencing.base_url", "https://api.zoom.us/v2")
	v.SetDefault("conferencing.token_url", "https://zoom.us/oauth/token")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("worker.concurrency", 5)
	v.SetDefault("worker.reminder_cron", "@every 1h")
	v.SetDefault("worker.sync_cron", "@every 6h")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

// Get returns the loaded config, panicking if Load was never called. Prefer
// GetSafe in code paths that can run before startup finishes.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: not loaded")
	}
	return instance
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// Set installs a config directly, for tests.
func Set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
