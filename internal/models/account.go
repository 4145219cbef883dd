package models

import (
	"time"
)

// Account is a local webmail login. It exists only when the local
// database backend owns the credentials; remote backends (IMAP, POP3,
// LDAP) never create rows here.
type Account struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"` // bcrypt hash, never the plaintext secret

	CreatedAt time.Time
	UpdatedAt time.Time
}
