package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVaultConfig_RequiresPath(t *testing.T) {
	cfg := VaultConfig{Path: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty vault path should fail validation")
	}
}

func TestVaultConfig_RejectsAbsoluteDefaultSubfolder(t *testing.T) {
	cfg := VaultConfig{Path: "~/Notes", DefaultSubfolder: "/etc"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("absolute default_subfolder should fail validation")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestExpandPaths_HomeRelativeVault(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := NewDefaultConfig()
	cfg.Vault.Path = "~/CaptureTest"
	if err := cfg.ExpandPaths(); err != nil {
		t.Fatalf("ExpandPaths: %v", err)
	}
	if want := filepath.Join(home, "CaptureTest"); cfg.Vault.Path != want {
		t.Errorf("vault = %q, want %q", cfg.Vault.Path, want)
	}
}

func TestExpandPaths_DerivesSQLitePath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Vault.Path = "/tmp/vault"
	cfg.SQLite.Path = ""
	if err := cfg.ExpandPaths(); err != nil {
		t.Fatalf("ExpandPaths: %v", err)
	}
	if want := filepath.Join("/tmp/vault", ".ansuz-index.db"); cfg.SQLite.Path != want {
		t.Errorf("sqlite = %q, want %q", cfg.SQLite.Path, want)
	}
}

func TestExpandPaths_KeepsExplicitSQLitePath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Vault.Path = "/tmp/vault"
	cfg.SQLite.Path = "/tmp/elsewhere.db"
	if err := cfg.ExpandPaths(); err != nil {
		t.Fatalf("ExpandPaths: %v", err)
	}
	if cfg.SQLite.Path != "/tmp/elsewhere.db" {
		t.Errorf("sqlite = %q", cfg.SQLite.Path)
	}
}
