package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	JWTSecret         string
	AllowedOrigins    string
	MidtransBaseURL   string
	MidtransServerKey string
	BiteshipBaseURL   string
	BiteshipAPIKey    string
	BrevoBaseURL      string
	BrevoAPIKey       string
	EmailFrom         string
	EmailFromName     string
	ShutdownTimeout   time.Duration
	PaymentExpiry     time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultAllowedOrigins  = "*"
	defaultMidtransBaseURL = "https://app.sandbox.midtrans.com"
	defaultBiteshipBaseURL = "https://api.biteship.com"
	defaultBrevoBaseURL    = "https://api.brevo.com"
	defaultEmailFrom       = "noreply@mymedina.com"
	defaultEmailFromName   = "MyMedina"
	defaultShutdownTimeout = 10 * time.Second
	defaultPaymentExpiry   = 24 * time.Hour
)

// Load parses configuration from .env, environment variables and flags.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AllowedOrigins:    getString(lookup, "ALLOWED_ORIGINS", defaultAllowedOrigins),
		MidtransBaseURL:   getString(lookup, "MIDTRANS_BASE_URL", defaultMidtransBaseURL),
		MidtransServerKey: getString(lookup, "MIDTRANS_SERVER_KEY", ""),
		BiteshipBaseURL:   getString(lookup, "BITESHIP_BASE_URL", defaultBiteshipBaseURL),
		BiteshipAPIKey:    getString(lookup, "BITESHIP_API_KEY", ""),
		BrevoBaseURL:      getString(lookup, "BREVO_BASE_URL", defaultBrevoBaseURL),
		BrevoAPIKey:       getString(lookup, "BREVO_API_KEY", ""),
		EmailFrom:         getString(lookup, "EMAIL_FROM", defaultEmailFrom),
		EmailFromName:     getString(lookup, "EMAIL_FROM_NAME", defaultEmailFromName),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		PaymentExpiry:     getDuration(lookup, "PAYMENT_EXPIRY", defaultPaymentExpiry),
	}

	fs := flag.NewFlagSet("commerce", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.MidtransBaseURL, "midtrans-url", cfg.MidtransBaseURL, "Midtrans API base URL")
	fs.StringVar(&cfg.BiteshipBaseURL, "biteship-url", cfg.BiteshipBaseURL, "Biteship API base URL")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PaymentExpiry <= 0 {
		cfg.PaymentExpiry = defaultPaymentExpiry
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
