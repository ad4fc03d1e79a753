package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Scan:    ScanConfig{DefaultMode: "basic"},
		Storage: StorageConfig{DataDir: "data/resumes"},
		Server: ServerConfig{
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      10 * 1024 * 1024,
		},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid scan mode",
			mutate:  func(c *Config) { c.Scan.DefaultMode = "deep" },
			wantErr: "invalid scan default mode",
		},
		{
			name:    "missing data dir",
			mutate:  func(c *Config) { c.Storage.DataDir = "" },
			wantErr: "storage data directory is required",
		},
		{
			name:    "zero max file size",
			mutate:  func(c *Config) { c.App.MaxFileSize = 0 },
			wantErr: "max file size must be positive",
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "server port is required",
		},
		{
			name:    "unknown default format",
			mutate:  func(c *Config) { c.App.DefaultFormat = "yaml" },
			wantErr: "invalid default format",
		},
		{
			name:    "bad TLS mode",
			mutate:  func(c *Config) { c.Server.TLS.Mode = "tls13" },
			wantErr: "TLS configuration error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyFallbacks(t *testing.T) {
	t.Run("mutual TLS gets default auth policy", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.TLS.Mode = "mutual"
		cfg.applyFallbacks()
		if cfg.Server.TLS.ClientAuthPolicy != "require" {
			t.Fatalf("ClientAuthPolicy = %q, want require", cfg.Server.TLS.ClientAuthPolicy)
		}
		if cfg.Server.TLS.MinVersion != "1.2" {
			t.Fatalf("MinVersion = %q, want 1.2", cfg.Server.TLS.MinVersion)
		}
	})

	t.Run("service instance generated", func(t *testing.T) {
		cfg := validConfig()
		cfg.Observability.ServiceName = "resumescan"
		cfg.applyFallbacks()
		if cfg.Observability.ServiceInstance == "" {
			t.Fatal("ServiceInstance should be generated")
		}
		if !strings.HasPrefix(cfg.Observability.ServiceInstance, "resumescan-") {
			t.Fatalf("ServiceInstance = %q, want resumescan- prefix", cfg.Observability.ServiceInstance)
		}
	})

	t.Run("debug log level enables console output", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.LogLevel = "debug"
		cfg.applyFallbacks()
		if !cfg.Observability.ConsoleOutput {
			t.Fatal("ConsoleOutput should be enabled for debug log level")
		}
	})
}
