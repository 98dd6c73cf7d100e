package main

import (
	"log/slog"
	"time"

	"github.com/fastprodman/betpoa/internal/config"
)

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

type apiConfig struct {
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	StorageDriver   string        `env:"STORAGE_DRIVER" envDefault:"postgres"`
	RulesFile       string        `env:"RULES_FILE" envDefault:""`

	Postgres config.PostgresConfig
	HTTP     config.HTTPConfig
}
