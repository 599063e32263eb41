package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes requested at login. openid makes Google return an id_token.
var Scopes = []string{"openid", "email", "profile"}

// storedToken is the on-disk form of a token. oauth2.Token drops the raw
// response when marshalled, so the id_token is kept alongside it.
type storedToken struct {
	oauth2.Token
	IDToken string `json:"id_token,omitempty"`
}

// LoadOAuthConfig reads an OAuth client credentials file as downloaded from
// the Google Cloud console.
func LoadOAuthConfig(clientPath string) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(clientPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	conf, err := google.ConfigFromJSON(clientJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return conf, nil
}

// LoadToken reads a token saved by SaveToken.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	tok := st.Token
	if st.IDToken != "" {
		return tok.WithExtra(map[string]interface{}{"id_token": st.IDToken}), nil
	}
	return &tok, nil
}

// SaveToken saves a token to a file with mode 0600.
func SaveToken(path string, token *oauth2.Token) error {
	st := storedToken{Token: *token}
	if id, ok := token.Extra("id_token").(string); ok {
		st.IDToken = id
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// OAuthProvider serves tokens from a stored OAuth token, refreshing it with
// the refresh token when it expires and writing the result back to disk.
type OAuthProvider struct {
	mu        sync.Mutex
	conf      *oauth2.Config
	tok       *oauth2.Token
	tokenPath string
}

// NewOAuthProvider creates a provider from an OAuth config and the current token.
// tokenPath may be empty, in which case refreshed tokens are kept in memory only.
func NewOAuthProvider(conf *oauth2.Config, tok *oauth2.Token, tokenPath string) *OAuthProvider {
	return &OAuthProvider{conf: conf, tok: tok, tokenPath: tokenPath}
}

// LoadOAuthProvider builds a provider from oauth_client.json and token.json.
func LoadOAuthProvider(clientPath, tokenPath string) (*OAuthProvider, error) {
	conf, err := LoadOAuthConfig(clientPath)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}
	return NewOAuthProvider(conf, tok, tokenPath), nil
}

// Token implements Provider. The stored token is refreshed only if expired.
func (p *OAuthProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetch(ctx, p.tok)
}

// RefreshToken implements Refresher by treating the stored token as expired.
func (p *OAuthProvider) RefreshToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	expired := *p.tok
	expired.Expiry = time.Now().Add(-time.Minute)
	return p.fetch(ctx, &expired)
}

func (p *OAuthProvider) fetch(ctx context.Context, current *oauth2.Token) (string, error) {
	t, err := p.conf.TokenSource(ctx, current).Token()
	if err != nil {
		return "", fmt.Errorf("token expired or revoked (run: curate login): %w", err)
	}
	if t.AccessToken != p.tok.AccessToken {
		p.tok = t
		if p.tokenPath != "" {
			if err := SaveToken(p.tokenPath, t); err != nil {
				return "", fmt.Errorf("failed to save token: %w", err)
			}
		}
	}
	return BearerValue(t), nil
}
