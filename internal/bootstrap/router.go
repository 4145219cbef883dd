package bootstrap

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/Pyons/cypht/internal/config"
	"github.com/Pyons/cypht/internal/handlers"
	"github.com/Pyons/cypht/internal/middleware"
	"github.com/Pyons/cypht/internal/store"
	"github.com/Pyons/cypht/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
) (*gin.Engine, error) {
	setupGinMode()
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if err := setupSessionMiddleware(r, cfg); err != nil {
		return nil, err
	}

	// Health check endpoint
	r.GET("/healthz", createHealthCheckHandler(db))

	// Metrics endpoint
	if cfg.MetricsEnabled {
		r.GET("/metrics", middleware.MetricsAuth(cfg.MetricsAuthToken), gin.WrapH(promhttp.Handler()))
	}

	// Login boundary
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// Local account management requires an established session.
	accounts := r.Group("/accounts", middleware.RequireSession())
	{
		accounts.POST("", accountHandler.Create)
		accounts.DELETE("/:username", accountHandler.Delete)
		accounts.PUT("/:username/password", accountHandler.ChangePassword)
	}

	return r, nil
}

func setupGinMode() {
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}

func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) error {
	secret := cfg.SessionSecret
	if secret == "" {
		generated, err := util.CryptoRandomString(64)
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = generated
		log.Println("[Auth] Generated ephemeral session secret")
	}

	sessionStore := cookie.NewStore([]byte(secret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   false, // set behind TLS-terminating proxy config
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("cypht_session", sessionStore))
	return nil
}

func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.Health(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
