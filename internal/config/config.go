package config

import (
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/fabric_billing/pkg/config"
)

type Config struct {
	ServiceName string
	LogLevel    string

	DatabaseURL string
	SeedCatalog bool

	AllowNegativeStock bool

	KafkaBrokers []string
	KafkaTopic   string
}

func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug("env_file_not_loaded", "files", envFiles, "error", err)
	}

	cfg := Config{
		ServiceName: config.EnvDefault("SERVICE_NAME", "fabric-billing"),
		LogLevel:    config.EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: config.EnvDefault("DATABASE_URL", "cloth_shop.db"),
		SeedCatalog: config.EnvBoolDefault("SEED_CATALOG", true),

		AllowNegativeStock: config.EnvBoolDefault("ALLOW_NEGATIVE_STOCK", true),

		KafkaBrokers: config.CSV(config.EnvDefault("KAFKA_BROKERS", "")),
		KafkaTopic:   config.EnvDefault("KAFKA_TOPIC", "bill_events"),
	}

	if err := config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
