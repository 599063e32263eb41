package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBackendURL, EnvToken, EnvAuthMode, EnvAudience, EnvCredentials} {
		t.Setenv(k, "")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "trailing slash stripped", in: "http://192.168.1.10:3001/api/", want: "http://192.168.1.10:3001/api"},
		{name: "already clean", in: "https://curate.example.com/api", want: "https://curate.example.com/api"},
		{name: "whitespace trimmed", in: "  https://x.test  ", want: "https://x.test"},
		{name: "relative rejected", in: "/api", wantErr: true},
		{name: "ftp rejected", in: "ftp://x.test", wantErr: true},
		{name: "empty rejected", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, AuthModeOAuth, cfg.Auth.Mode)
	assert.Empty(t, cfg.BackendURL)

	_, err = cfg.RequireBackend()
	assert.ErrorIs(t, err, ErrNoBackendURL)
}

func TestNew_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yml := "backend_url: http://file.test/api/\nauth:\n  mode: service_account\n  audience: https://curate.test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(yml), 0600))

	cfg, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://file.test/api", cfg.BackendURL)
	assert.Equal(t, AuthModeServiceAccount, cfg.Auth.Mode)
	assert.Equal(t, "https://curate.test", cfg.Auth.Audience)

	t.Setenv(EnvBackendURL, "https://env.test/")
	t.Setenv(EnvToken, "abc123")
	cfg, err = New(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://env.test", cfg.BackendURL)
	assert.Equal(t, "abc123", cfg.Token)
}

func TestNew_InvalidInputs(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("backend_url: [nope"), 0600))
	_, err := New(dir)
	assert.Error(t, err)

	t.Setenv(EnvAuthMode, "kerberos")
	_, err = New(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown auth mode")

	t.Setenv(EnvAuthMode, "")
	t.Setenv(EnvBackendURL, "not a url")
	_, err = New(t.TempDir())
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	cfg := &Config{Dir: "/tmp/curate"}
	assert.Equal(t, "/tmp/curate/config.yaml", cfg.ConfigPath())
	assert.Equal(t, "/tmp/curate/oauth_client.json", cfg.OAuthClientPath())
	assert.Equal(t, "/tmp/curate/token.json", cfg.TokenPath())
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/curate", DefaultConfigDir())
}
