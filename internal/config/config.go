// Package config собирает конфигурацию сервера: значения по умолчанию,
// поверх них переменные окружения, поверх них флаги командной строки.
// Конфигурация загружается один раз при старте и далее только читается.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/newsdeskhq/newsdesk/internal/auth"
)

// Config содержит настройки процесса
type Config struct {
	Addr            string        // адрес HTTP сервера
	DatabasePath    string        // путь к файлу SQLite
	JWTSecret       string        // секрет подписи токенов (HS256)
	TokenTTL        time.Duration // время жизни bearer токена
	BcryptCost      int           // cost factor хеширования паролей
	AllowedOrigins  []string      // разрешенные CORS origins
	LoginRateLimit  int           // максимум попыток входа за окно
	LoginRateWindow time.Duration // окно rate limit для входа
	LogLevel        string        // debug | info | warn | error
}

// loadDefaults заполняет значения по умолчанию для разработки
// Секрет по умолчанию непригоден для production и должен быть переопределен
func (c *Config) loadDefaults() {
	c.Addr = ":8080"
	c.DatabasePath = "newsdesk.db"
	c.JWTSecret = "dev-secret-change-me"
	c.TokenTTL = time.Hour
	c.BcryptCost = auth.DefaultCost
	c.AllowedOrigins = []string{"*"}
	c.LoginRateLimit = 20
	c.LoginRateWindow = 15 * time.Minute
	c.LogLevel = "info"
}

// loadEnv накладывает значения из переменных окружения
func (c *Config) loadEnv() error {
	if v := os.Getenv("NEWSDESK_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("NEWSDESK_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("NEWSDESK_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("NEWSDESK_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid NEWSDESK_TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}
	if v := os.Getenv("NEWSDESK_BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid NEWSDESK_BCRYPT_COST: %w", err)
		}
		c.BcryptCost = n
	}
	if v := os.Getenv("NEWSDESK_CORS_ORIGINS"); v != "" {
		c.AllowedOrigins = splitOrigins(v)
	}
	if v := os.Getenv("NEWSDESK_LOGIN_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid NEWSDESK_LOGIN_RATE_LIMIT: %w", err)
		}
		c.LoginRateLimit = n
	}
	if v := os.Getenv("NEWSDESK_LOGIN_RATE_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid NEWSDESK_LOGIN_RATE_WINDOW: %w", err)
		}
		c.LoginRateWindow = d
	}
	if v := os.Getenv("NEWSDESK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// parseFlags накладывает значения из флагов командной строки
func (c *Config) parseFlags(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.StringVar(&c.DatabasePath, "db", c.DatabasePath, "path to SQLite database file")
	fs.StringVar(&c.JWTSecret, "jwt-secret", c.JWTSecret, "JWT signing secret")
	fs.DurationVar(&c.TokenTTL, "token-ttl", c.TokenTTL, "bearer token lifetime")
	fs.IntVar(&c.BcryptCost, "bcrypt-cost", c.BcryptCost, "bcrypt cost factor")
	origins := fs.String("cors-origins", strings.Join(c.AllowedOrigins, ","), "comma-separated allowed CORS origins")
	fs.IntVar(&c.LoginRateLimit, "login-rate-limit", c.LoginRateLimit, "max login attempts per window")
	fs.DurationVar(&c.LoginRateWindow, "login-rate-window", c.LoginRateWindow, "login rate limit window")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	c.AllowedOrigins = splitOrigins(*origins)
	return nil
}

// Load собирает конфигурацию: defaults -> env -> flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.loadDefaults()

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(fs, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate проверяет согласованность итоговой конфигурации
func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret cannot be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("login rate limit must be positive")
	}
	if c.LoginRateWindow <= 0 {
		return fmt.Errorf("login rate window must be positive")
	}
	return nil
}

// splitOrigins разбирает список origins, разделенных запятыми
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
