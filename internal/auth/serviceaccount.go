package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// ServiceAccountProvider mints Google-signed ID tokens for a service account,
// for unattended use against a backend that accepts Google identities.
type ServiceAccountProvider struct {
	mu       sync.Mutex
	audience string
	opts     []option.ClientOption
	src      oauth2.TokenSource
}

// NewServiceAccountProvider creates a provider for the given audience.
// An empty credentialsFile falls back to Application Default Credentials.
func NewServiceAccountProvider(audience, credentialsFile string, opts ...option.ClientOption) *ServiceAccountProvider {
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	return &ServiceAccountProvider{audience: audience, opts: opts}
}

// Token implements Provider.
func (p *ServiceAccountProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token(ctx)
}

// RefreshToken implements Refresher. The cached token source is dropped so
// the next token is minted from scratch.
func (p *ServiceAccountProvider) RefreshToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.src = nil
	return p.token(ctx)
}

func (p *ServiceAccountProvider) token(ctx context.Context) (string, error) {
	if p.src == nil {
		src, err := idtoken.NewTokenSource(ctx, p.audience, p.opts...)
		if err != nil {
			return "", fmt.Errorf("create id token source: %w", err)
		}
		p.src = src
	}
	t, err := p.src.Token()
	if err != nil {
		return "", fmt.Errorf("mint id token: %w", err)
	}
	return t.AccessToken, nil
}
