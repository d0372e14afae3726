package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/internal/resolve"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration. It is read once at
// the start of every command invocation and never mutated afterwards.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	Editor EditorConfig      `yaml:"editor"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ExpandPaths expands home-relative entries (leading ~) against the
// invoking user's home directory. The SQLite path defaults to a hidden
// file next to the vault when unset, so a bare config still works.
func (c *Config) ExpandPaths() error {
	vault, err := resolve.ExpandHome(c.Vault.Path)
	if err != nil {
		return err
	}
	c.Vault.Path = vault

	if c.SQLite.Path == "" {
		c.SQLite.Path = filepath.Join(vault, ".ansuz-index.db")
		return nil
	}
	db, err := resolve.ExpandHome(c.SQLite.Path)
	if err != nil {
		return err
	}
	c.SQLite.Path = db
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for serve mode.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds where captures land.
type VaultConfig struct {
	// Path is the vault root; absolute or home-relative (~ prefix).
	Path string `yaml:"path"`
	// DefaultSubfolder is the relative folder under the root used when no
	// folder is chosen explicitly. Empty means the root itself.
	DefaultSubfolder string `yaml:"default_subfolder"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	); err != nil {
		return err
	}
	if filepath.IsAbs(c.DefaultSubfolder) {
		return fmt.Errorf("vault: default_subfolder must be relative: %s", c.DefaultSubfolder)
	}
	return nil
}

// EditorConfig names the external application used for "open after save".
// Empty means the system default handler.
type EditorConfig struct {
	Command string `yaml:"command"`
}

// SQLiteConfig holds the note catalog database path.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds authentication configuration for serve mode.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "~/Notes",
		},
		Editor: EditorConfig{
			Command: "",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
