package bootstrap

import (
	"net/http"

	"github.com/Pyons/cypht/internal/config"
	"github.com/Pyons/cypht/internal/core"
	"github.com/Pyons/cypht/internal/handlers"
	"github.com/Pyons/cypht/internal/services"
	"github.com/Pyons/cypht/internal/store"

	"github.com/gin-gonic/gin"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB              *store.Store
	MetricsRecorder core.Recorder
	Provider        core.AuthProvider

	// Services
	AccountService *services.AccountService

	// HTTP
	AuthHandler    *handlers.AuthHandler
	AccountHandler *handlers.AccountHandler
	Router         *gin.Engine
	Server         *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app := &Application{Config: cfg}

	// Phase 1: Validate configuration
	validateConfiguration(cfg)

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(); err != nil {
		return err
	}

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database and metrics
func (app *Application) initializeInfrastructure() error {
	var err error

	// The account database is opened only for the backend that owns it.
	app.DB, err = initializeDatabase(app.Config)
	if err != nil {
		return err
	}

	app.MetricsRecorder = initializeMetrics(app.Config)

	return nil
}

// initializeBusinessLayer resolves the active auth provider and wires services
func (app *Application) initializeBusinessLayer() error {
	var err error

	app.Provider, err = initializeAuthProvider(app.Config, app.DB)
	if err != nil {
		return err
	}

	app.AccountService = services.NewAccountService(
		app.DB,
		app.Provider,
		app.MetricsRecorder,
	)
	return nil
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	app.AuthHandler = handlers.NewAuthHandler(app.AccountService, app.MetricsRecorder)
	app.AccountHandler = handlers.NewAccountHandler(app.AccountService)

	router, err := setupRouter(app.Config, app.DB, app.AuthHandler, app.AccountHandler)
	if err != nil {
		return err
	}
	app.Router = router
	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}
