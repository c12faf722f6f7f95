package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultRunAddress       = "localhost:8080"
	DefaultMigrationsDir    = "internal/db/migrations"
	DefaultRabbitMQExchange = "ledger.events"
	DefaultAuditInterval    = time.Minute
	DefaultUnbalancedLimit  = 100
)

type Config struct {
	RunAddress           string        `env:"RUN_ADDRESS"`
	DatabaseDSN          string        `env:"DATABASE_URI"`
	MigrationsDir        string        `env:"MIGRATIONS_DIR"`
	RabbitMQURL          string        `env:"RABBITMQ_URL"`
	RabbitMQExchange     string        `env:"RABBITMQ_EXCHANGE"`
	AuditInterval        time.Duration `env:"AUDIT_INTERVAL"`
	AuditUnbalancedLimit uint          `env:"AUDIT_UNBALANCED_LIMIT"`
	LogLevel             string        `env:"LOG_LEVEL"`
}

// LoadConfig собирает конфиг из переменных окружения и флагов args. Переменные окружения имеют приоритет.
// Если рядом лежит .env, он подгружается первым и не перезаписывает уже выставленные переменные.
func LoadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.AuditInterval <= 0 {
		return nil, fmt.Errorf("audit interval must be positive, got %s", conf.AuditInterval)
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config, args []string) error {
	flags := flag.NewFlagSet("ledger", flag.ContinueOnError)
	flags.StringVar(&flagConfig.RunAddress, "a", DefaultRunAddress, "Run address in format host:port")
	flags.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flags.StringVar(&flagConfig.MigrationsDir, "m", DefaultMigrationsDir, "Database migrations directory")
	flags.StringVar(&flagConfig.RabbitMQURL, "r", "", "RabbitMQ URL, events are disabled when empty")
	flags.DurationVar(&flagConfig.AuditInterval, "i", DefaultAuditInterval, "Ledger invariant audit interval")

	return flags.Parse(args) //nolint:wrapcheck
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:           defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:          defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:        defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		RabbitMQURL:          defaultIfBlank(envConfig.RabbitMQURL, flagsConfig.RabbitMQURL),
		RabbitMQExchange:     defaultIfBlank(envConfig.RabbitMQExchange, DefaultRabbitMQExchange),
		AuditInterval:        defaultIfZero(envConfig.AuditInterval, flagsConfig.AuditInterval),
		AuditUnbalancedLimit: defaultIfZero(envConfig.AuditUnbalancedLimit, DefaultUnbalancedLimit),
		LogLevel:             envConfig.LogLevel,
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func defaultIfZero[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
