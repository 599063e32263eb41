package auth

import (
	"fmt"

	"curate/internal/config"
)

// FromConfig selects the provider described by cfg.
// A nil provider with a nil error means no credentials are configured;
// requests then go out unauthenticated.
func FromConfig(cfg *config.Config) (Provider, error) {
	if cfg.Token != "" {
		return NewStatic(cfg.Token), nil
	}

	switch cfg.Auth.Mode {
	case config.AuthModeNone:
		return nil, nil
	case config.AuthModeServiceAccount:
		if cfg.Auth.Audience == "" {
			return nil, fmt.Errorf("auth.audience is required for service_account mode")
		}
		return NewServiceAccountProvider(cfg.Auth.Audience, cfg.Auth.Credentials), nil
	default:
		if !cfg.HasOAuthClient() || !cfg.HasToken() {
			return nil, nil
		}
		p, err := LoadOAuthProvider(cfg.OAuthClientPath(), cfg.TokenPath())
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
