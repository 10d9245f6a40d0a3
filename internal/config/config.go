package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию Stock Service
// Парсится из переменных окружения через caarlos0/env
type Config struct {
	AppEnv   Env    `env:"APP_ENV" envDefault:"local"`
	HTTPAddr string `env:"HTTP_ADDR"`

	// FirebaseProjectID - идентификатор Firebase проекта (обязателен)
	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`
	// CredentialsFile - путь к service account key файлу.
	// Если пусто, SDK использует Application Default Credentials.
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	// ProductsCollection - коллекция Firestore с товарами
	ProductsCollection string `env:"PRODUCTS_COLLECTION" envDefault:"products"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// OpenTelemetry
	OTelEnabled       bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint      string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelSamplingRatio float64 `env:"OTEL_SAMPLING_RATIO" envDefault:"1.0"`
}

// Load загружает конфигурацию из переменных окружения
// Читает APP_ENV и устанавливает дефолты в зависимости от окружения
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AppEnv != EnvLocal && cfg.AppEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", cfg.AppEnv)
	}

	// Дефолты, зависящие от окружения
	if cfg.HTTPAddr == "" {
		if cfg.AppEnv == EnvLocal {
			cfg.HTTPAddr = "127.0.0.1:8080"
		} else {
			cfg.HTTPAddr = "0.0.0.0:8080"
		}
	}
	if cfg.OTelEndpoint == "" {
		if cfg.AppEnv == EnvLocal {
			cfg.OTelEndpoint = "127.0.0.1:4317"
		} else {
			cfg.OTelEndpoint = "otel-collector:4317"
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.FirebaseProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	if c.ProductsCollection == "" {
		return fmt.Errorf("PRODUCTS_COLLECTION is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.OTelEnabled && (c.OTelSamplingRatio < 0 || c.OTelSamplingRatio > 1) {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be in [0, 1]")
	}
	return nil
}

// Log выводит конфигурацию в лог
func (c Config) Log() {
	log.Printf("Config loaded:")
	log.Printf("  APP_ENV: %s", c.AppEnv)
	log.Printf("  HTTP_ADDR: %s", c.HTTPAddr)
	log.Printf("  FIREBASE_PROJECT_ID: %s", c.FirebaseProjectID)
	log.Printf("  GOOGLE_APPLICATION_CREDENTIALS: %s", c.CredentialsFile)
	log.Printf("  PRODUCTS_COLLECTION: %s", c.ProductsCollection)
	log.Printf("  SHUTDOWN_TIMEOUT: %s", c.ShutdownTimeout)
	log.Printf("  OTEL_ENABLED: %v", c.OTelEnabled)
	log.Printf("  OTEL_EXPORTER_OTLP_ENDPOINT: %s", c.OTelEndpoint)
	log.Printf("  OTEL_SAMPLING_RATIO: %f", c.OTelSamplingRatio)
}
