package store

import (
	"errors"
	"fmt"

	"github.com/Pyons/cypht/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store owns the local account table. Every query is parameterized
// through GORM; no SQL is ever built from user input.
type Store struct {
	db *gorm.DB
}

func New(driver, dsn string) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate
	if err := db.AutoMigrate(&models.Account{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// GetAccountByUsername looks up an account by exact username match.
func (s *Store) GetAccountByUsername(username string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &account, nil
}

// CreateAccount inserts a new account. Returns ErrUsernameConflict when
// the username is already taken.
func (s *Store) CreateAccount(account *models.Account) error {
	var existing models.Account
	err := s.db.Where("username = ?", account.Username).First(&existing).Error
	if err == nil {
		return ErrUsernameConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	return s.db.Create(account).Error
}

// DeleteAccount removes the account with the given username and reports
// how many rows were removed. Callers treat anything other than exactly
// one row as a failure.
func (s *Store) DeleteAccount(username string) (int64, error) {
	res := s.db.Where("username = ?", username).Delete(&models.Account{})
	return res.RowsAffected, res.Error
}

// UpdatePasswordHash replaces the stored hash for the given username and
// reports how many rows were updated.
func (s *Store) UpdatePasswordHash(username, passwordHash string) (int64, error) {
	res := s.db.Model(&models.Account{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash)
	return res.RowsAffected, res.Error
}

// Health checks the database connection
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
