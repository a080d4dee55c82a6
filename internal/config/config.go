// Package config loads service settings from the environment, optionally
// seeded from a dotenv file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const defaultEnvFile = ".env.local"

type Common struct {
	AppName     string
	Addr        string
	DatabaseURL string
	FrontendURL string
	Debug       bool
	// TrustProxy makes X-Forwarded-For and X-Real-IP the client address. Only
	// enable it behind a proxy that overwrites those headers.
	TrustProxy bool
}

type AuthConfig struct {
	Common
	JWTSecret          string
	JWTAlgorithm       string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	BcryptCost         int
	LoginRatePerMinute int
}

type NotesConfig struct {
	Common
	AuthServiceURL     string
	AuthServiceTimeout time.Duration
}

// ExpiresIn is the access token lifetime in seconds, as reported to clients.
func (c AuthConfig) ExpiresIn() int64 {
	return int64(c.AccessTokenTTL / time.Second)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getint(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getbool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// loadEnvFile reads ENV_FILE (default .env.local) if it exists. Variables
// already present in the environment win.
func loadEnvFile() error {
	path := getenv("ENV_FILE", defaultEnvFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func loadCommon(appName string) (Common, error) {
	debug, err := getbool("DEBUG")
	if err != nil {
		return Common{}, err
	}
	trustProxy, err := getbool("TRUST_PROXY_HEADERS")
	if err != nil {
		return Common{}, err
	}
	c := Common{
		AppName:     getenv("APP_NAME", appName),
		Addr:        getenv("ADDR", ":8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		Debug:       debug,
		TrustProxy:  trustProxy,
	}
	if c.DatabaseURL == "" {
		return Common{}, errors.New("DATABASE_URL must be set")
	}
	return c, nil
}

func LoadAuth() (*AuthConfig, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	common, err := loadCommon("jarvis-auth")
	if err != nil {
		return nil, err
	}

	c := &AuthConfig{
		Common:       common,
		JWTSecret:    os.Getenv("JWT_SECRET_KEY"),
		JWTAlgorithm: strings.ToUpper(getenv("JWT_ALGORITHM", "HS256")),
	}
	if c.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY must be set")
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("JWT_ALGORITHM %q is not supported", c.JWTAlgorithm)
	}

	minutes, err := getint("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	days, err := getint("REFRESH_TOKEN_EXPIRE_DAYS", 30)
	if err != nil {
		return nil, err
	}
	if minutes <= 0 || days <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	c.AccessTokenTTL = time.Duration(minutes) * time.Minute
	c.RefreshTokenTTL = time.Duration(days) * 24 * time.Hour

	if c.BcryptCost, err = getint("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.LoginRatePerMinute, err = getint("LOGIN_RATE_PER_MINUTE", 60); err != nil {
		return nil, err
	}
	if c.LoginRatePerMinute < 0 {
		return nil, errors.New("LOGIN_RATE_PER_MINUTE must not be negative")
	}

	return c, nil
}

func LoadNotes() (*NotesConfig, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	common, err := loadCommon("jarvis-notes")
	if err != nil {
		return nil, err
	}

	c := &NotesConfig{
		Common:         common,
		AuthServiceURL: strings.TrimRight(os.Getenv("AUTH_SERVICE_URL"), "/"),
	}
	if c.AuthServiceURL == "" {
		return nil, errors.New("AUTH_SERVICE_URL must be set")
	}

	c.AuthServiceTimeout, err = time.ParseDuration(getenv("AUTH_SERVICE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("AUTH_SERVICE_TIMEOUT: %w", err)
	}
	if c.AuthServiceTimeout <= 0 {
		return nil, errors.New("AUTH_SERVICE_TIMEOUT must be positive")
	}

	return c, nil
}
