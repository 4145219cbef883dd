package auth

import (
	"context"
	"time"

	"github.com/Pyons/cypht/internal/core"
	"github.com/Pyons/cypht/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// LocalProvider authenticates against the local account database.
type LocalProvider struct {
	store *store.Store

	// failureDelay is slept before every negative answer so that
	// "unknown user" and "wrong password" take the same time.
	failureDelay time.Duration
	sleep        func(time.Duration)
}

// NewLocalProvider creates a new local database authentication provider.
func NewLocalProvider(s *store.Store, failureDelay time.Duration) *LocalProvider {
	return &LocalProvider{
		store:        s,
		failureDelay: failureDelay,
		sleep:        time.Sleep,
	}
}

// Authenticate verifies credentials against the local database.
// Lookup failure, hash mismatch and database errors all resolve to
// ErrInvalidCredentials after the fixed failure delay.
func (p *LocalProvider) Authenticate(
	ctx context.Context,
	username, password string,
) (*core.Result, error) {
	account, err := p.store.GetAccountByUsername(username)
	if err != nil {
		return p.fail()
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(account.PasswordHash),
		[]byte(password),
	); err != nil {
		return p.fail()
	}

	return &core.Result{
		Username: account.Username,
		Success:  true,
	}, nil
}

func (p *LocalProvider) fail() (*core.Result, error) {
	p.sleep(p.failureDelay)
	return nil, ErrInvalidCredentials
}

// Name returns provider name for logging
func (p *LocalProvider) Name() string {
	return string(BackendLocal)
}
