package handlers

import (
	"encoding/gob"
	"net/http"

	"github.com/Pyons/cypht/internal/core"
	"github.com/Pyons/cypht/internal/middleware"
	"github.com/Pyons/cypht/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func init() {
	// Connection settings are stored in the session as a typed value.
	gob.Register(core.ConnectionSettings{})
}

// AuthHandler exposes the login boundary over HTTP. It owns the session
// side of verification: the provider hands connection settings back
// through the service, and this handler pushes them into the session.
type AuthHandler struct {
	accounts *services.AccountService
	metrics  core.Recorder
}

func NewAuthHandler(accounts *services.AccountService, metrics core.Recorder) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		metrics:  metrics,
	}
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Login verifies the submitted credentials against the active backend.
// Every failure answers with the same generic message regardless of
// cause, so a caller cannot tell an unknown username from a wrong
// password or a misconfigured backend.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	ok, conn := h.accounts.Verify(c.Request.Context(), req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionKeyUsername, req.Username)
	if conn != nil {
		session.Set(h.accounts.Backend().SessionKey(), *conn)
		h.metrics.RecordSessionExport(conn.Backend)
	}
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not establish session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"username": req.Username,
	})
}

// Logout drops the session, including any exported connection settings.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
