package config

import "time"

// PostgresConfig configures the pgx connection pool. DSN is only required
// when Postgres storage is selected.
type PostgresConfig struct {
	DSN               string        `env:"PG_DSN" envDefault:""`
	MaxConns          int32         `env:"PG_MAX_CONNS" envDefault:"10"`
	MinConns          int32         `env:"PG_MIN_CONNS" envDefault:"1"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"1h"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTH_CHECK_PERIOD" envDefault:"30s"`
}

// HTTPConfig configures the public API listener.
type HTTPConfig struct {
	Port               uint16        `env:"HTTP_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string      `env:"HTTP_CORS_ALLOWED_ORIGINS" envDefault:"*"`
	ReadTimeout        time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout       time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
}
