package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("BASE_URL")
	os.Unsetenv("ENV")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("expected default base URL, got %s", cfg.BaseURL)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
}

func TestLoad_WithBaseURL(t *testing.T) {
	os.Setenv("BASE_URL", "https://oncoatlas.example.com")
	defer os.Unsetenv("BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://oncoatlas.example.com" {
		t.Errorf("expected BASE_URL to be set, got %s", cfg.BaseURL)
	}
}

func TestLoad_RejectsNonHTTPBaseURL(t *testing.T) {
	os.Setenv("BASE_URL", "ftp://oncoatlas.example.com")
	defer os.Unsetenv("BASE_URL")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-http base URL")
	}
}

func TestValidate_RequiresBaseURL(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when BASE_URL is empty")
	}
}
