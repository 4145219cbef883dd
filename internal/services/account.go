package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Pyons/cypht/internal/auth"
	"github.com/Pyons/cypht/internal/core"
	"github.com/Pyons/cypht/internal/models"
	"github.com/Pyons/cypht/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountService is the single place where "is this login valid" is
// decided. It routes every verification to the one active provider and
// collapses all provider errors to a boolean, logging the detail for
// operators only.
type AccountService struct {
	store    *store.Store
	provider core.AuthProvider
	backend  auth.Backend
	metrics  core.Recorder
}

func NewAccountService(
	s *store.Store,
	provider core.AuthProvider,
	metrics core.Recorder,
) *AccountService {
	return &AccountService{
		store:    s,
		provider: provider,
		backend:  auth.Backend(provider.Name()),
		metrics:  metrics,
	}
}

// Backend returns the active backend kind.
func (s *AccountService) Backend() auth.Backend {
	return s.backend
}

// Verify checks the credentials against the active backend. It never
// returns an error: every failure class resolves to false, and the
// caller learns nothing about why. On success the returned settings,
// when non-nil, describe the authenticated remote connection and should
// be exported to the session by the caller.
func (s *AccountService) Verify(
	ctx context.Context,
	username, password string,
) (bool, *core.ConnectionSettings) {
	start := time.Now()

	result, err := s.provider.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrBackendUnreachable) {
			s.metrics.RecordBackendUnreachable(string(s.backend))
		}
		log.Printf("[Auth] Failed for user=%s backend=%s: %v", username, s.backend, err)
		s.metrics.RecordAuthAttempt(string(s.backend), false, time.Since(start))
		return false, nil
	}

	if result == nil || !result.Success {
		log.Printf("[Auth] Failed for user=%s backend=%s", username, s.backend)
		s.metrics.RecordAuthAttempt(string(s.backend), false, time.Since(start))
		return false, nil
	}

	s.metrics.RecordAuthAttempt(string(s.backend), true, time.Since(start))
	return true, result.Connection
}

// Management operations. Only meaningful when the active backend owns
// its account records; for remote backends they fail with a generic
// user-visible message. The returned string is safe to show to users.

// CreateAccount creates a local account with a freshly hashed password.
func (s *AccountService) CreateAccount(username, password string) (bool, string) {
	if ok, msg := s.managementAvailable(); !ok {
		return false, msg
	}
	if username == "" || password == "" {
		return false, "username and password are required"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Account] Hashing failed for user=%s: %v", username, err)
		s.metrics.RecordAccountOperation("create", false)
		return false, "could not create account"
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateAccount(account); err != nil {
		s.metrics.RecordAccountOperation("create", false)
		if errors.Is(err, store.ErrUsernameConflict) {
			return false, fmt.Sprintf("username %q is already in use", username)
		}
		log.Printf("[Account] Create failed for user=%s: %v", username, err)
		return false, "could not create account"
	}

	s.metrics.RecordAccountOperation("create", true)
	return true, fmt.Sprintf("account %q created", username)
}

// DeleteAccount removes a local account. It succeeds only when exactly
// one record matched and was removed.
func (s *AccountService) DeleteAccount(username string) (bool, string) {
	if ok, msg := s.managementAvailable(); !ok {
		return false, msg
	}

	rows, err := s.store.DeleteAccount(username)
	if err != nil || rows != 1 {
		log.Printf("[Account] Delete failed for user=%s rows=%d err=%v", username, rows, err)
		s.metrics.RecordAccountOperation("delete", false)
		return false, "could not delete account"
	}

	s.metrics.RecordAccountOperation("delete", true)
	return true, fmt.Sprintf("account %q deleted", username)
}

// ChangePassword recomputes the hash for an existing account. It
// succeeds only when exactly one row was updated.
func (s *AccountService) ChangePassword(username, password string) (bool, string) {
	if ok, msg := s.managementAvailable(); !ok {
		return false, msg
	}
	if password == "" {
		return false, "a new password is required"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Account] Hashing failed for user=%s: %v", username, err)
		s.metrics.RecordAccountOperation("change_password", false)
		return false, "could not change password"
	}

	rows, err := s.store.UpdatePasswordHash(username, string(hash))
	if err != nil || rows != 1 {
		log.Printf("[Account] Password change failed for user=%s rows=%d err=%v", username, rows, err)
		s.metrics.RecordAccountOperation("change_password", false)
		return false, "could not change password"
	}

	s.metrics.RecordAccountOperation("change_password", true)
	return true, "password changed"
}

func (s *AccountService) managementAvailable() (bool, string) {
	if !s.backend.InternalAccountStore() || s.store == nil {
		return false, fmt.Sprintf("account management is not available for the %q backend", s.backend)
	}
	return true, ""
}
