package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

const validYAML = `
server:
  address: ":9090"
database:
  uri: "mongodb://db.internal:27017"
  name: "fitiva_test"
jwt:
  secret: "test-secret"
  expiration: "45m"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	viper.Reset()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := LoadConfig(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("server.address = %q, want %q", cfg.Server.Address, ":9090")
	}
	if cfg.Database.URI != "mongodb://db.internal:27017" {
		t.Errorf("database.uri = %q, want %q", cfg.Database.URI, "mongodb://db.internal:27017")
	}
	if cfg.Database.Name != "fitiva_test" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "fitiva_test")
	}
	if cfg.JWT.Secret != "test-secret" {
		t.Errorf("jwt.secret = %q, want %q", cfg.JWT.Secret, "test-secret")
	}
	if cfg.JWT.Expiration != 45*time.Minute {
		t.Errorf("jwt.expiration = %v, want 45m", cfg.JWT.Expiration)
	}
}

// TestLoadDefaults verifies that defaults apply when no config file exists.
func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("server.address = %q, want %q", cfg.Server.Address, ":8080")
	}
	if cfg.Database.URI != "mongodb://localhost:27017" {
		t.Errorf("database.uri = %q, want %q", cfg.Database.URI, "mongodb://localhost:27017")
	}
	if cfg.Database.Name != "fitiva" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "fitiva")
	}
	if cfg.JWT.Expiration != time.Hour {
		t.Errorf("jwt.expiration = %v, want 1h", cfg.JWT.Expiration)
	}
}

// TestEnvOverride verifies that environment variables take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	dir := writeTemp(t, validYAML)
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("server.address = %q, want %q", cfg.Server.Address, ":7070")
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("jwt.secret = %q, want %q", cfg.JWT.Secret, "env-secret")
	}
	// Unchanged fields keep YAML values.
	if cfg.Database.Name != "fitiva_test" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "fitiva_test")
	}
}
