package bootstrap

import (
	"log"

	"github.com/Pyons/cypht/internal/auth"
	"github.com/Pyons/cypht/internal/config"
	"github.com/Pyons/cypht/internal/store"
)

// initializeDatabase opens the account store when the configured
// backend owns local accounts. Remote backends do not touch the
// database at all.
func initializeDatabase(cfg *config.Config) (*store.Store, error) {
	if !auth.Backend(cfg.AuthMode).InternalAccountStore() {
		return nil, nil
	}

	db, err := store.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	log.Printf("Account database ready (driver=%s)", cfg.DatabaseDriver)
	return db, nil
}
