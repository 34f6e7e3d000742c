package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"linkedin-scraper/internal/models"
)

// ErrMissingCredentials indicates that LINKEDIN_EMAIL or LINKEDIN_PASSWORD
// is unset, empty, or still carries a template placeholder value.
var ErrMissingCredentials = errors.New("missing credentials")

// Environment variable names for the required credentials.
const (
	EnvEmail    = "LINKEDIN_EMAIL"
	EnvPassword = "LINKEDIN_PASSWORD"
)

// placeholders are the values shipped in the template .env file. Running
// against them would burn a login attempt on garbage, so they count as
// missing.
var placeholders = map[string]bool{
	"your-email@example.com": true,
	"your_email@example.com": true,
	"your-password":          true,
	"your_password_here":     true,
	"changeme":               true,
}

// DefaultConfig returns the default configuration for the scraper with
// environment overrides applied.
func DefaultConfig() models.Config {
	cfg := models.Config{
		URLsFilePath:   "linkedin_urls.txt",
		OutputFilePath: "profiles.csv",
		DBFilePath:     "scraper_state.db",
		LogFilePath:    "scraper.log",

		Headless: true,
		Resume:   false,

		LoginTimeout: 45 * time.Second,
		NavTimeout:   30 * time.Second,
		SettleDelay:  3 * time.Second,

		MinProfileDelay: 5 * time.Second,
		MaxProfileDelay: 10 * time.Second,
		NavRetries:      1,

		ShutdownTimeout: 10 * time.Second,
	}

	applyEnvOverrides(&cfg)
	return cfg
}

// LoadCredentials reads the LinkedIn account credentials from the
// environment, honoring a .env file in the working directory when one
// exists. The returned error is the only place the variable names appear;
// the values themselves never do.
func LoadCredentials() (models.Credentials, error) {
	// A missing .env is fine, the variables may come from the real
	// environment (container, CI secret, shell export).
	_ = godotenv.Load()

	email := strings.TrimSpace(os.Getenv(EnvEmail))
	password := strings.TrimSpace(os.Getenv(EnvPassword))

	if email == "" || placeholders[strings.ToLower(email)] {
		return models.Credentials{}, fmt.Errorf("%w: %s is not set", ErrMissingCredentials, EnvEmail)
	}
	if password == "" || placeholders[strings.ToLower(password)] {
		return models.Credentials{}, fmt.Errorf("%w: %s is not set", ErrMissingCredentials, EnvPassword)
	}

	return models.Credentials{Email: email, Password: password}, nil
}

func applyEnvOverrides(cfg *models.Config) {
	if v := os.Getenv("SCRAPER_URLS_FILE"); v != "" {
		cfg.URLsFilePath = v
	}
	if v := os.Getenv("SCRAPER_OUTPUT_FILE"); v != "" {
		cfg.OutputFilePath = v
	}
	if v := os.Getenv("SCRAPER_DB_FILE"); v != "" {
		cfg.DBFilePath = v
	}
	if v := os.Getenv("SCRAPER_LOG_FILE"); v != "" {
		cfg.LogFilePath = v
	}
	if v := os.Getenv("SCRAPER_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Headless = b
		}
	}
	if v := os.Getenv("SCRAPER_RESUME"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Resume = b
		}
	}
	if d := envSeconds("SCRAPER_LOGIN_TIMEOUT"); d > 0 {
		cfg.LoginTimeout = d
	}
	if d := envSeconds("SCRAPER_NAV_TIMEOUT"); d > 0 {
		cfg.NavTimeout = d
	}
	if d := envSeconds("SCRAPER_MIN_DELAY"); d > 0 {
		cfg.MinProfileDelay = d
	}
	if d := envSeconds("SCRAPER_MAX_DELAY"); d > 0 {
		cfg.MaxProfileDelay = d
	}
	if cfg.MaxProfileDelay < cfg.MinProfileDelay {
		cfg.MaxProfileDelay = cfg.MinProfileDelay
	}
	if v := os.Getenv("SCRAPER_NAV_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.NavRetries = n
		}
	}
}

// envSeconds parses an override given as a whole number of seconds.
func envSeconds(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
