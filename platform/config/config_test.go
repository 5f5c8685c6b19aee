package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ZOHO_CLIENT_ID", "client")
	t.Setenv("ZOHO_CLIENT_SECRET", "secret")
	t.Setenv("ZOHO_REFRESH_TOKEN", "refresh")
	t.Setenv("SECRETS_FILE", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenCacheTTL != 30*time.Minute {
		t.Errorf("TokenCacheTTL = %v, want 30m", cfg.TokenCacheTTL)
	}
	if cfg.SnapshotCacheTTL != time.Hour {
		t.Errorf("SnapshotCacheTTL = %v, want 1h", cfg.SnapshotCacheTTL)
	}
	if cfg.ZohoRedirectURI != "http://localhost:7860" {
		t.Errorf("ZohoRedirectURI = %q", cfg.ZohoRedirectURI)
	}
	if cfg.ZohoAccountsURL != "https://accounts.zoho.com/oauth/v2/token" {
		t.Errorf("ZohoAccountsURL = %q", cfg.ZohoAccountsURL)
	}
	if cfg.MinioBucketMessages != "lead-messages" {
		t.Errorf("MinioBucketMessages = %q", cfg.MinioBucketMessages)
	}
	if cfg.IsMinIOEnabled() || cfg.IsEmailEnabled() {
		t.Error("optional backends should be disabled without endpoints")
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("ZOHO_CLIENT_ID", "")
	t.Setenv("ZOHO_CLIENT_SECRET", "")
	t.Setenv("ZOHO_REFRESH_TOKEN", "")
	t.Setenv("SECRETS_FILE", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestSecretsFileOverridesEnv(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "secrets.yaml")
	content := "ZOHO_CLIENT_ID: file-client\nZOHO_REFRESH_TOKEN: file-refresh\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SECRETS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ZohoClientID != "file-client" {
		t.Errorf("ZohoClientID = %q, want secrets-file value", cfg.ZohoClientID)
	}
	if cfg.ZohoRefreshToken != "file-refresh" {
		t.Errorf("ZohoRefreshToken = %q, want secrets-file value", cfg.ZohoRefreshToken)
	}
	// Values absent from the file keep their env values.
	if cfg.ZohoClientSecret != "secret" {
		t.Errorf("ZohoClientSecret = %q, want env value", cfg.ZohoClientSecret)
	}
}

func TestSecretsFileMissing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SECRETS_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unreadable secrets file")
	}
}

func TestCORSWildcardWithCredentialsRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for wildcard origins with credentials")
	}
}

func TestInvalidTTLRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_CACHE_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable TTL")
	}
}
