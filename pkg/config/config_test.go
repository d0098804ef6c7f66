package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// 配置文件不存在时使用默认值
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ServiceName != "pricing" {
		t.Fatalf("service name: got %q", cfg.ServiceName)
	}
	if cfg.HTTP.Port != 8080 {
		t.Fatalf("http port: got %d", cfg.HTTP.Port)
	}
	if cfg.Pricing.SpotSteps != 10 || cfg.Pricing.VolSteps != 10 {
		t.Fatalf("pricing steps: got spot=%d vol=%d", cfg.Pricing.SpotSteps, cfg.Pricing.VolSteps)
	}
	if cfg.Pricing.MaxSteps != 100 {
		t.Fatalf("pricing max steps: got %d", cfg.Pricing.MaxSteps)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
service_name = "pricing-test"

[http]
port = 9999

[pricing]
spot_steps = 20
vol_steps = 15
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServiceName != "pricing-test" {
		t.Fatalf("service name: got %q", cfg.ServiceName)
	}
	if cfg.HTTP.Port != 9999 {
		t.Fatalf("http port: got %d", cfg.HTTP.Port)
	}
	if cfg.Pricing.SpotSteps != 20 || cfg.Pricing.VolSteps != 15 {
		t.Fatalf("pricing steps: got spot=%d vol=%d", cfg.Pricing.SpotSteps, cfg.Pricing.VolSteps)
	}
}

func TestValidateRejectsBadSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[pricing]
spot_steps = 1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for spot_steps=1")
	}
}
