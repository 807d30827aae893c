package client

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HEALTHCARE_API_URL", "HEALTHCARE_TIMEOUT", "HEALTHCARE_DEBUG", "HEALTHCARE_API_KEY", "HEALTHCARE_USER_AGENT", "DEBUG"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != DefaultBaseURL {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Debug || cfg.APIKey != "" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEALTHCARE_API_URL", "https://api.example.org")
	t.Setenv("HEALTHCARE_TIMEOUT", "5s")
	t.Setenv("HEALTHCARE_API_KEY", "k")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "https://api.example.org" || cfg.Timeout != 5*time.Second || cfg.APIKey != "k" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	c, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	if c.BaseURL() != "https://api.example.org" {
		t.Fatalf("BaseURL = %q", c.BaseURL())
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", c.http.Timeout)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEALTHCARE_TIMEOUT", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
	t.Setenv("HEALTHCARE_TIMEOUT", "-1s")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}
