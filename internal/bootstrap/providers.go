package bootstrap

import (
	"log"

	"github.com/Pyons/cypht/internal/auth"
	"github.com/Pyons/cypht/internal/config"
	"github.com/Pyons/cypht/internal/core"
	"github.com/Pyons/cypht/internal/metrics"
	"github.com/Pyons/cypht/internal/store"
)

// initializeAuthProvider resolves the single active provider from the
// registry. Exactly one provider instance serves all verification
// requests for the lifetime of the process.
func initializeAuthProvider(cfg *config.Config, db *store.Store) (core.AuthProvider, error) {
	provider, err := auth.Open(cfg, db)
	if err != nil {
		return nil, err
	}
	log.Printf("Authentication backend: %s", provider.Name())
	return provider, nil
}

// initializeMetrics sets up the metrics recorder
func initializeMetrics(cfg *config.Config) core.Recorder {
	if !cfg.MetricsEnabled {
		log.Println("Metrics disabled")
	}
	return metrics.Init(cfg.MetricsEnabled)
}
