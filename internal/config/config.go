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
	JWTUserSecret string `env:"JWT_SECRET"`
	// AdminCode - секрет, позволяющий зарегистрировать аккаунт с ролью admin.
	// Пустое значение отключает такую регистрацию.
	AdminCode string `env:"ADMIN_CODE"`
	// NagadLedgerURL - адрес реестра транзакций. Пустое значение оставляет
	// проверку платежей на уровне формата.
	NagadLedgerURL string `env:"NAGAD_LEDGER_URL"`
	// RedisAddr - адрес redis для кеша каталога. Пустое значение отключает кеш.
	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"30s"`
}

func LoadConfig() (*Config, error) {
	// .env файл необязателен, используется только в локальной разработке.
	_ = godotenv.Load()

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTUserSecret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.JWTUserSecret, "j", "", "JWT signing secret")
	flag.StringVar(&flagConfig.NagadLedgerURL, "n", "", "Nagad transaction ledger base URL")
	flag.StringVar(&flagConfig.RedisAddr, "r", "", "Redis address for the catalog cache")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:     defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:    defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:  defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		JWTUserSecret:  defaultIfBlank(envConfig.JWTUserSecret, flagsConfig.JWTUserSecret),
		AdminCode:      envConfig.AdminCode,
		NagadLedgerURL: defaultIfBlank(envConfig.NagadLedgerURL, flagsConfig.NagadLedgerURL),
		RedisAddr:      defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr),
		CacheTTL:       envConfig.CacheTTL,
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
