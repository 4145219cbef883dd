package store

import (
	"path/filepath"
	"testing"

	"github.com/Pyons/cypht/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New("sqlite", filepath.Join(t.TempDir(), "cypht_test.db"))
	require.NoError(t, err)
	return s
}

func newAccount(username string) *models.Account {
	return &models.Account{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakefa",
	}
}

func TestCreateAndGetAccount(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateAccount(newAccount("alice")))

	account, err := s.GetAccountByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.NotEmpty(t, account.PasswordHash)
}

func TestGetAccount_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAccountByUsername("nobody")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCreateAccount_Conflict(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateAccount(newAccount("alice")))

	err := s.CreateAccount(newAccount("alice"))
	assert.ErrorIs(t, err, ErrUsernameConflict)
}

func TestDeleteAccount_RowsAffected(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateAccount(newAccount("alice")))

	rows, err := s.DeleteAccount("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = s.DeleteAccount("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestUpdatePasswordHash_RowsAffected(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateAccount(newAccount("alice")))

	rows, err := s.UpdatePasswordHash("alice", "newhash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	account, err := s.GetAccountByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "newhash", account.PasswordHash)

	rows, err = s.UpdatePasswordHash("nobody", "newhash")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestGetDialector_UnknownDriver(t *testing.T) {
	_, err := GetDialector("oracle", "dsn")
	assert.Error(t, err)
}
