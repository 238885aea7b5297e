// Package config loads process configuration from the environment, after
// merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Log configures the zap logger.
type Log struct {
	Level       string `env:"LOG_LEVEL,default=info"`
	Development bool   `env:"LOG_DEVELOPMENT,default=false"`
}

// Kafka configures the event broker. An empty broker list disables publishing.
type Kafka struct {
	Brokers string `env:"KAFKA_BROKERS"`
	GroupID string `env:"KAFKA_GROUP,default=cefoods-catalog"`
}

// BrokerList splits the comma separated broker list.
func (k Kafka) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Storefront is the configuration of cmd/cefoods.
type Storefront struct {
	HTTPAddr        string        `env:"HTTP_ADDR,default=:8080"`
	StoreBackend    string        `env:"STORE_BACKEND,default=memory"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	RedisAddr       string        `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPrefix     string        `env:"REDIS_PREFIX,default=cefoods:"`
	CatalogURL      string        `env:"CATALOG_URL,default=http://localhost:3001"`
	CatalogTimeout  time.Duration `env:"CATALOG_TIMEOUT,default=5s"`
	SeedDemoAccount bool          `env:"SEED_DEMO_ACCOUNT,default=true"`
	PasswordCost    int           `env:"PASSWORD_COST,default=10"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST,default=40"`
	Kafka           Kafka
	Log             Log
}

// CatalogAPI is the configuration of cmd/catalog-api.
type CatalogAPI struct {
	Addr        string `env:"CATALOG_ADDR,default=:3001"`
	Driver      string `env:"DB_DRIVER,default=postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBUser      string `env:"DBUSER"`
	DBPass      string `env:"DBPASS"`
	DBAddr      string `env:"DBADDR,default=127.0.0.1:3306"`
	DBName      string `env:"DBNAME,default=cefoods"`
	Kafka       Kafka
	Log         Log
}

// DSN returns DatabaseURL, or for MySQL without one, a DSN assembled from the
// DBUSER/DBPASS/DBADDR/DBNAME settings.
func (c CatalogAPI) DSN() string {
	if c.DatabaseURL != "" || c.Driver != "mysql" {
		return c.DatabaseURL
	}
	cfg := mysql.NewConfig()
	cfg.User = c.DBUser
	cfg.Passwd = c.DBPass
	cfg.Net = "tcp"
	cfg.Addr = c.DBAddr
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// LoadDotEnv merges .env into the process environment. A missing file is not
// an error; it is reported so the caller can log it.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Decode fills target from the environment, applying defaults.
func Decode(target any) error {
	if err := envdecode.Decode(target); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("failed to decode environment: %w", err)
	}
	return nil
}

// LoadStorefront reads the storefront configuration.
func LoadStorefront() (Storefront, error) {
	var cfg Storefront
	if err := Decode(&cfg); err != nil {
		return cfg, err
	}
	switch cfg.StoreBackend {
	case "memory", "postgres", "redis":
	default:
		return cfg, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == "postgres" && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required for the postgres store backend")
	}
	return cfg, nil
}

// LoadCatalogAPI reads the catalog API configuration.
func LoadCatalogAPI() (CatalogAPI, error) {
	var cfg CatalogAPI
	if err := Decode(&cfg); err != nil {
		return cfg, err
	}
	switch cfg.Driver {
	case "postgres", "mysql", "sqlite3":
	default:
		return cfg, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}
	if cfg.DSN() == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}
	return cfg, nil
}
