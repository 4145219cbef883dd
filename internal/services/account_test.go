package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Pyons/cypht/internal/auth"
	"github.com/Pyons/cypht/internal/core"
	"github.com/Pyons/cypht/internal/metrics"
	"github.com/Pyons/cypht/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalService(t *testing.T) *AccountService {
	t.Helper()
	s, err := store.New("sqlite", filepath.Join(t.TempDir(), "cypht_test.db"))
	require.NoError(t, err)
	// No failure delay in tests; the delay itself is covered by the
	// provider tests.
	provider := auth.NewLocalProvider(s, 0)
	return NewAccountService(s, provider, metrics.NewNoopMetrics())
}

func TestCreateThenVerify(t *testing.T) {
	svc := newLocalService(t)
	ctx := context.Background()

	ok, msg := svc.CreateAccount("alice", "secret123")
	require.True(t, ok, msg)

	verified, conn := svc.Verify(ctx, "alice", "secret123")
	assert.True(t, verified)
	assert.Nil(t, conn, "local backend exports no connection settings")
}

func TestCreateDuplicate(t *testing.T) {
	svc := newLocalService(t)
	ctx := context.Background()

	ok, _ := svc.CreateAccount("alice", "secret123")
	require.True(t, ok)

	ok, msg := svc.CreateAccount("alice", "different")
	assert.False(t, ok)
	assert.Contains(t, msg, "already in use")

	// The original credentials still work; no second row replaced them.
	verified, _ := svc.Verify(ctx, "alice", "secret123")
	assert.True(t, verified)
	verified, _ = svc.Verify(ctx, "alice", "different")
	assert.False(t, verified)
}

func TestChangePassword(t *testing.T) {
	svc := newLocalService(t)
	ctx := context.Background()

	ok, _ := svc.CreateAccount("alice", "oldpass1")
	require.True(t, ok)

	ok, msg := svc.ChangePassword("alice", "newpass1")
	require.True(t, ok, msg)

	verified, _ := svc.Verify(ctx, "alice", "newpass1")
	assert.True(t, verified)
	verified, _ = svc.Verify(ctx, "alice", "oldpass1")
	assert.False(t, verified)
}

func TestChangePassword_UnknownUser(t *testing.T) {
	svc := newLocalService(t)

	ok, _ := svc.ChangePassword("nobody", "newpass1")
	assert.False(t, ok)
}

func TestDeleteAccount(t *testing.T) {
	svc := newLocalService(t)
	ctx := context.Background()

	ok, _ := svc.CreateAccount("alice", "secret123")
	require.True(t, ok)

	ok, msg := svc.DeleteAccount("alice")
	require.True(t, ok, msg)

	verified, _ := svc.Verify(ctx, "alice", "secret123")
	assert.False(t, verified)

	ok, _ = svc.DeleteAccount("alice")
	assert.False(t, ok, "deleting a nonexistent account fails")
}

func TestVerify_UnknownUserNeverErrors(t *testing.T) {
	svc := newLocalService(t)

	verified, conn := svc.Verify(context.Background(), "nobody", "whatever")
	assert.False(t, verified)
	assert.Nil(t, conn)
}

// stubRemoteProvider plays a remote backend that hands back fresh
// connection settings on every successful attempt.
type stubRemoteProvider struct {
	calls int
}

func (p *stubRemoteProvider) Authenticate(
	_ context.Context,
	username, password string,
) (*core.Result, error) {
	p.calls++
	return &core.Result{
		Username: username,
		Success:  true,
		Connection: &core.ConnectionSettings{
			Backend:    "imap",
			Server:     "mail.example.org",
			Port:       993,
			TLS:        true,
			Username:   username,
			Credential: password,
		},
	}, nil
}

func (p *stubRemoteProvider) Name() string { return "imap" }

func TestVerify_RemoteSettingsAreFreshPerCall(t *testing.T) {
	provider := &stubRemoteProvider{}
	svc := NewAccountService(nil, provider, metrics.NewNoopMetrics())
	ctx := context.Background()

	ok1, conn1 := svc.Verify(ctx, "bob", "secret123")
	ok2, conn2 := svc.Verify(ctx, "bob", "secret123")

	assert.True(t, ok1)
	assert.True(t, ok2)
	require.NotNil(t, conn1)
	require.NotNil(t, conn2)
	assert.NotSame(t, conn1, conn2, "no caching across verification calls")
	assert.Equal(t, 2, provider.calls)
}

func TestManagementUnavailableForRemoteBackends(t *testing.T) {
	svc := NewAccountService(nil, &stubRemoteProvider{}, metrics.NewNoopMetrics())

	ok, msg := svc.CreateAccount("alice", "secret123")
	assert.False(t, ok)
	assert.Contains(t, msg, "not available")

	ok, _ = svc.DeleteAccount("alice")
	assert.False(t, ok)

	ok, _ = svc.ChangePassword("alice", "newpass1")
	assert.False(t, ok)
}

func TestBackend(t *testing.T) {
	svc := newLocalService(t)
	assert.Equal(t, auth.BackendLocal, svc.Backend())
	assert.True(t, svc.Backend().InternalAccountStore())
}

// Guard against accidental coupling: the service must keep working when
// the configured failure delay is nonzero.
func TestVerify_WithFailureDelay(t *testing.T) {
	s, err := store.New("sqlite", filepath.Join(t.TempDir(), "cypht_test.db"))
	require.NoError(t, err)
	provider := auth.NewLocalProvider(s, time.Millisecond)
	svc := NewAccountService(s, provider, metrics.NewNoopMetrics())

	verified, _ := svc.Verify(context.Background(), "nobody", "whatever")
	assert.False(t, verified)
}
