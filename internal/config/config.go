package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	JWTSecret      string   `env:"JWT_SECRET"`
	SchedulerToken string   `env:"SCHEDULER_TOKEN"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// MinimumPayout в сентаво. SweepInterval — период фоновых свиперов.
	MinimumPayout int64         `env:"MINIMUM_PAYOUT" envDefault:"10000"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`

	// Kafka опциональна: без брокеров события баланса не отправляются.
	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"vitrine.balance-events"`

	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

func LoadConfig() (*Config, error) {
	// .env нужен только для локальной разработки, его отсутствие — норма.
	_ = godotenv.Load()

	var envConfig Config
	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	var flagsConfig Config
	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTSecret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

func loadFlags(flagsConfig *Config) {
	flag.StringVar(&flagsConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagsConfig.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&flagsConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")

	flag.Parse()
}

// mergeConfig отдает приоритет значениям из окружения, флаги — фолбэк.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	return &merged
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
