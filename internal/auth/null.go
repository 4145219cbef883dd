package auth

import (
	"context"

	"github.com/Pyons/cypht/internal/core"
)

// NullProvider accepts any credentials. It exists for tests and local
// bring-up only and must never be configured in production.
type NullProvider struct{}

// NewNullProvider creates a provider that always succeeds.
func NewNullProvider() *NullProvider {
	return &NullProvider{}
}

func (p *NullProvider) Authenticate(
	ctx context.Context,
	username, password string,
) (*core.Result, error) {
	return &core.Result{
		Username: username,
		Success:  true,
	}, nil
}

// Name returns provider name for logging
func (p *NullProvider) Name() string {
	return string(BackendNone)
}
