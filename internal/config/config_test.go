package config

import (
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	_, err := load(nil, lookupFrom(map[string]string{}))
	if err == nil {
		t.Fatal("expected error when database URI is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/commerce",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if cfg.MidtransBaseURL != defaultMidtransBaseURL {
		t.Fatalf("unexpected midtrans base URL: %s", cfg.MidtransBaseURL)
	}
	if cfg.PaymentExpiry != 24*time.Hour {
		t.Fatalf("unexpected payment expiry: %s", cfg.PaymentExpiry)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":        "postgres://localhost/commerce",
		"RUN_ADDRESS":         ":9090",
		"MIDTRANS_SERVER_KEY": "SB-Mid-server-abc",
		"BITESHIP_API_KEY":    "biteship_test_key",
		"PAYMENT_EXPIRY":      "12h",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9090" {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if cfg.MidtransServerKey != "SB-Mid-server-abc" {
		t.Fatalf("unexpected midtrans key: %s", cfg.MidtransServerKey)
	}
	if cfg.PaymentExpiry != 12*time.Hour {
		t.Fatalf("unexpected payment expiry: %s", cfg.PaymentExpiry)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	cfg, err := load([]string{"-a", ":7000", "-shutdown-timeout", "5s"}, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/commerce",
		"RUN_ADDRESS":  ":9090",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7000" {
		t.Fatalf("expected flag to win, got %s", cfg.RunAddress)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
}

func TestLoadRejectsBadShutdownTimeout(t *testing.T) {
	_, err := load([]string{"-shutdown-timeout", "soon"}, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/commerce",
	}))
	if err == nil {
		t.Fatal("expected error for invalid shutdown timeout")
	}
}
