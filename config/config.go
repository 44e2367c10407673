// config - источник загрузки конфигурации клиентского SDK.
//
// Источники (по убыванию приоритета):
//  1. явный путь path;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	API      APIConfig     `yaml:"api"`
	Auth     AuthConfig    `yaml:"auth"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Polling  PollingConfig `yaml:"polling"`
	Session  SessionConfig `yaml:"session"`
}

// APIConfig — адрес бэкенда MIZIZZI.
type APIConfig struct {
	BaseURL   string `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:5000/api"`
	UserAgent string `yaml:"user_agent" env:"API_USER_AGENT" env-default:"mizizzi-go-client"`
}

// AuthConfig — параметры протокола refresh и точки входа логина.
type AuthConfig struct {
	// RefreshPath — эндпойнт обмена refresh-токена на новую пару.
	RefreshPath string `yaml:"refresh_path" env:"AUTH_REFRESH_PATH" env-default:"/auth/refresh"`
	// RefreshLeeway — за сколько до истечения access-токена запускать
	// проактивный refresh; 0 отключает проактивный режим (остаётся только 401).
	RefreshLeeway time.Duration `yaml:"refresh_leeway" env:"AUTH_REFRESH_LEEWAY" env-default:"0s"`
	// CustomerLoginURL/AdminLoginURL — точки входа, которые получает
	// хук auth-failure в зависимости от вида клиента.
	CustomerLoginURL string `yaml:"customer_login_url" env:"AUTH_CUSTOMER_LOGIN_URL" env-default:"/login"`
	AdminLoginURL    string `yaml:"admin_login_url" env:"AUTH_ADMIN_LOGIN_URL" env-default:"/admin/login"`
}

// TimeoutConfig — таймауты исходящих вызовов.
type TimeoutConfig struct {
	Request time.Duration `yaml:"request" env:"TIMEOUT_REQUEST" env-default:"20s"`
	Refresh time.Duration `yaml:"refresh" env:"TIMEOUT_REFRESH" env-default:"10s"`
}

// PollingConfig — поллинг статуса платежа (M-PESA STK push / Pesapal).
type PollingConfig struct {
	Interval    time.Duration `yaml:"interval" env:"POLL_INTERVAL" env-default:"5s"`
	MaxAttempts int           `yaml:"max_attempts" env:"POLL_MAX_ATTEMPTS" env-default:"12"`
	// Countdown — общий wall-clock лимит ожидания; поллинг самоотменяется
	// по первому из двух пределов (attempts/countdown).
	Countdown time.Duration `yaml:"countdown" env:"POLL_COUNTDOWN" env-default:"90s"`
}

// SessionConfig — бэкенд хранения сессии (пары токенов).
type SessionConfig struct {
	// Backend: memory | file | redis.
	Backend  string `yaml:"backend" env:"SESSION_BACKEND" env-default:"memory"`
	FilePath string `yaml:"file_path" env:"SESSION_FILE_PATH" env-default:""`
	RedisURL string `yaml:"redis_url" env:"SESSION_REDIS_URL" env-default:""`
	// RedisPrefix — префикс ключей; к нему добавляется вид клиента
	// (admin/customer), чтобы сессии не пересекались.
	RedisPrefix string `yaml:"redis_prefix" env:"SESSION_REDIS_PREFIX" env-default:"mizizzi:session:"`
}

// Validate — минимальная проверка согласованности.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}

	switch c.Session.Backend {
	case "memory":
	case "file":
		if c.Session.FilePath == "" {
			return fmt.Errorf("session.file_path is required for file backend")
		}
	case "redis":
		if c.Session.RedisURL == "" {
			return fmt.Errorf("session.redis_url is required for redis backend")
		}
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}

	if c.Polling.MaxAttempts <= 0 {
		return fmt.Errorf("polling.max_attempts must be positive")
	}

	// Interval питает time.NewTicker, который паникует на неположительном
	// значении.
	if c.Polling.Interval <= 0 {
		return fmt.Errorf("polling.interval must be positive")
	}

	if c.Polling.Countdown < 0 {
		return fmt.Errorf("polling.countdown must not be negative")
	}

	return nil
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) явный путь
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide path, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
