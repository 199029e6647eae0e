package cmd

import (
	"storefront/internal/adapters/out/postgres"
)

// Counter backends selectable through COUNTER_BACKEND.
const (
	CounterBackendPostgres = "postgres"
	CounterBackendRedis    = "redis"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"storefront"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	CounterBackend string `env:"COUNTER_BACKEND" envDefault:"postgres"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`

	// KafkaHost is a comma separated broker list. Events are not published
	// when it is empty.
	KafkaHost              string `env:"KAFKA_HOST"`
	KafkaOrderChangedTopic string `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"orders.changed"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	UploadBaseURL string `env:"UPLOAD_BASE_URL" envDefault:"http://localhost:8080/uploads"`

	// ReconcileSchedule uses six-field cron syntax; empty disables the job.
	ReconcileSchedule  string `env:"RECONCILE_SCHEDULE" envDefault:"0 */5 * * * *"`
	ReconcileBatchSize int    `env:"RECONCILE_BATCH_SIZE" envDefault:"100"`
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
