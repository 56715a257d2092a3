package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config armazena todas as configurações do GoPantry.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL   string
	DBTimeout     time.Duration
	MigrationsDir string

	// Cache (Redis)
	RedisAddr    string
	CacheTimeout time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration
	AdminEmail   string

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Observabilidade e alertas
	MetricsEnabled bool
	TelegramToken  string
	TelegramChatID int64
}

// defaults dos valores opcionais; DATABASE_URL e JWT_SECRET_KEY não têm padrão.
var defaults = map[string]interface{}{
	"PORT":                    "8080",
	"ENV":                     "development",
	"LOG_LEVEL":               "info",
	"DB_TIMEOUT_SEC":          5,
	"MIGRATIONS_DIR":          "./sql",
	"REDIS_ADDR":              "localhost:6379",
	"CACHE_TIMEOUT_SEC":       10,
	"JWT_EXPIRY_MIN":          60,
	"ADMIN_EMAIL":             "",
	"RATE_LIMIT_MAX_REQUESTS": 100,
	"RATE_LIMIT_PERIOD_MIN":   1,
	"METRICS_ENABLED":         true,
	"TELEGRAM_TOKEN":          "",
	"TELEGRAM_CHAT_ID":        0,
}

// LoadConfig lê as variáveis de ambiente e, se path não for vazio, um
// arquivo de configuração (.env, .yaml, ...). O ambiente tem precedência.
func LoadConfig(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadMigrateConfig é usado por cmd/migrate, que só precisa do banco.
func LoadMigrateConfig(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("erro de configuração: a variável de ambiente DATABASE_URL deve ser definida")
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET_KEY"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("falha ao ler arquivo de configuração %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENV"),
		LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),

		DatabaseURL:   v.GetString("DATABASE_URL"),
		DBTimeout:     time.Duration(v.GetInt("DB_TIMEOUT_SEC")) * time.Second,
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),

		RedisAddr:    v.GetString("REDIS_ADDR"),
		CacheTimeout: time.Duration(v.GetInt("CACHE_TIMEOUT_SEC")) * time.Second,

		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),
		TokenExpiry:  time.Duration(v.GetInt("JWT_EXPIRY_MIN")) * time.Minute,
		AdminEmail:   v.GetString("ADMIN_EMAIL"),

		RateLimitMaxRequests: v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		RateLimitPeriod:      time.Duration(v.GetInt("RATE_LIMIT_PERIOD_MIN")) * time.Minute,

		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		TelegramToken:  v.GetString("TELEGRAM_TOKEN"),
		TelegramChatID: v.GetInt64("TELEGRAM_CHAT_ID"),
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("a variável de ambiente DATABASE_URL deve ser definida"))
	}
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("a variável de ambiente JWT_SECRET_KEY deve ser definida"))
	}
	if c.DBTimeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT_SEC deve ser positivo"))
	}
	if c.RateLimitMaxRequests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX_REQUESTS deve ser positivo"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("erro de configuração: %w", errors.Join(errs...))
	}
	return nil
}

// TelegramEnabled indica se os alertas de estoque devem ser enviados.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
