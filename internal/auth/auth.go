// Package auth provides the token providers the API client uses to authenticate requests.
package auth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// ErrNoToken indicates the provider has no token for the current user.
var ErrNoToken = errors.New("no token available")

// Provider returns the current user's bearer token.
// An empty token with a nil error means the user is not signed in.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// Refresher is implemented by providers that cache tokens and can be forced
// to fetch a fresh one. The API client calls it after a 401.
type Refresher interface {
	RefreshToken(ctx context.Context) (string, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context) (string, error)

// Token implements Provider.
func (f ProviderFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticProvider hands out a fixed token, e.g. one supplied through CURATE_TOKEN.
type StaticProvider struct {
	src oauth2.TokenSource
}

// NewStatic creates a provider that always returns token.
func NewStatic(token string) *StaticProvider {
	return &StaticProvider{
		src: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
	}
}

// Token implements Provider.
func (p *StaticProvider) Token(ctx context.Context) (string, error) {
	t, err := p.src.Token()
	if err != nil {
		return "", err
	}
	return t.AccessToken, nil
}

// BearerValue returns the value to send as bearer credential for t.
// Google responses carry an OpenID id_token which the backend verifies;
// otherwise the access token is used.
func BearerValue(t *oauth2.Token) string {
	if t == nil {
		return ""
	}
	if id, ok := t.Extra("id_token").(string); ok && id != "" {
		return id
	}
	return t.AccessToken
}
