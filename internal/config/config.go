package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

// Enabled reports whether picture uploads can be served.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != ""
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

func (c EmailConfig) Enabled() bool {
	return c.ResendAPIKey != "" && c.FromAddress != ""
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	SecretKey   string
	Algorithm   string
	TokenExpiry time.Duration
}

// Config is built once at startup and passed to every component that needs
// it; nothing reads the environment after Load returns.
type Config struct {
	Port        string
	DebugMode   bool
	CORSOrigins string
	Database    DatabaseConfig
	Auth        AuthConfig
	R2          R2Config
	Email       EmailConfig
}

// LoadEnvFiles loads ENV_FILE, ./env/.env and .env when present. Values that
// are already set in the environment win.
func LoadEnvFiles() error {
	candidates := []string{"./env/.env", ".env"}
	if path := os.Getenv("ENV_FILE"); path != "" {
		candidates = []string{path}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var errs []error
	r := envReader{errs: &errs}

	cfg := &Config{
		Port:        r.str("PORT", "8080"),
		DebugMode:   r.boolean("DEBUG_MODE", false),
		CORSOrigins: r.str("CORS_ALLOW_ORIGINS", "*"),
		Database: DatabaseConfig{
			URL:             r.str("DATABASE_URL", ""),
			MaxOpenConns:    r.integer("DB_MAX_OPEN_CONNS", 150),
			MaxIdleConns:    r.integer("DB_MAX_IDLE_CONNS", 100),
			ConnMaxLifetime: time.Duration(r.integer("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
			AutoMigrate:     r.boolean("AUTO_MIGRATE", false),
		},
		Auth: AuthConfig{
			SecretKey:   r.str("SECRET_KEY", ""),
			Algorithm:   r.str("ALGORITHM", "HS256"),
			TokenExpiry: time.Duration(r.integer("ACCESS_TOKEN_EXPIRE_MINUTES", 120)) * time.Minute,
		},
		R2: R2Config{
			AccountID:       r.str("R2_ACCOUNT_ID", ""),
			AccessKeyID:     r.str("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: r.str("R2_SECRET_ACCESS_KEY", ""),
			Bucket:          r.str("R2_BUCKET", ""),
			PublicURL:       r.str("R2_PUBLIC_URL", ""),
		},
		Email: EmailConfig{
			ResendAPIKey: r.str("RESEND_API_KEY", ""),
			FromAddress:  r.str("EMAIL_FROM_ADDRESS", ""),
			FromName:     r.str("EMAIL_FROM_NAME", "EventHub"),
		},
	}

	if cfg.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if cfg.Auth.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is not set"))
	}
	if cfg.Auth.TokenExpiry <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

type envReader struct {
	errs *[]error
}

func (r envReader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (r envReader) integer(key string, fallback int) int {
	v := r.str(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*r.errs = append(*r.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

func (r envReader) boolean(key string, fallback bool) bool {
	v := r.str(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*r.errs = append(*r.errs, fmt.Errorf("%s: invalid boolean %q", key, v))
		return fallback
	}
	return b
}
