package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveVaultToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("  s.filetoken\n"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		config  VaultConfig
		want    string
		wantErr bool
	}{
		{
			name:   "direct token",
			config: VaultConfig{Token: "s.direct"},
			want:   "s.direct",
		},
		{
			name:   "token from file is trimmed",
			config: VaultConfig{TokenFile: tokenFile},
			want:   "s.filetoken",
		},
		{
			name:   "direct token wins over file",
			config: VaultConfig{Token: "s.direct", TokenFile: tokenFile},
			want:   "s.direct",
		},
		{
			name:    "missing token",
			config:  VaultConfig{},
			wantErr: true,
		},
		{
			name:    "unreadable token file",
			config:  VaultConfig{TokenFile: filepath.Join(t.TempDir(), "missing")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := resolveVaultToken(tt.config, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token != tt.want {
				t.Fatalf("token = %q, want %q", token, tt.want)
			}
		})
	}
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client when vault is disabled")
	}
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int64
		wantErr bool
	}{
		{name: "int64", raw: int64(3), want: 3},
		{name: "float64", raw: float64(7), want: 7},
		{name: "string", raw: "12", want: 12},
		{name: "bad string", raw: "twelve", wantErr: true},
		{name: "unexpected type", raw: []string{"1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionValue(tt.raw, "secret/data/test")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("version = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateTLSDeprecatedFields(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		wantErr string
	}{
		{
			name: "content fields accepted",
			data: map[string]any{"cert": "pem", "key": "pem", "ca": "pem"},
		},
		{
			name:    "cert_file rejected",
			data:    map[string]any{"cert_file": "/etc/tls/cert.pem"},
			wantErr: "'cert_file' field is no longer supported",
		},
		{
			name:    "key_file rejected",
			data:    map[string]any{"key_file": "/etc/tls/key.pem"},
			wantErr: "'key_file' field is no longer supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTLSDeprecatedFields(&VaultSecret{Data: tt.data}, nil)
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

func TestLoadTLSCertificateContent(t *testing.T) {
	cfg := &Config{}
	secret := &VaultSecret{Data: map[string]any{
		"cert": "cert-pem",
		"key":  "key-pem",
	}}

	count := loadTLSCertificateContent(cfg, secret, nil)
	if count != 2 {
		t.Fatalf("loaded %d certificates, want 2", count)
	}
	if cfg.Server.TLS.CertContent != "cert-pem" || cfg.Server.TLS.KeyContent != "key-pem" {
		t.Fatalf("certificate content not applied: %+v", cfg.Server.TLS)
	}
	if cfg.Server.TLS.CAContent != "" {
		t.Fatalf("CA content should stay empty, got %q", cfg.Server.TLS.CAContent)
	}
}
