package handlers

import (
	"net/http"

	"github.com/Pyons/cypht/internal/services"

	"github.com/gin-gonic/gin"
)

// AccountHandler exposes local account management. Unlike login
// failures, these operations answer with a user-visible message.
type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type accountRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Create adds a local account.
func (h *AccountHandler) Create(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	ok, msg := h.accounts.CreateAccount(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": msg})
}

// Delete removes a local account.
func (h *AccountHandler) Delete(c *gin.Context) {
	ok, msg := h.accounts.DeleteAccount(c.Param("username"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

type changePasswordRequest struct {
	Password string `form:"password" json:"password"`
}

// ChangePassword replaces the password of a local account.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	ok, msg := h.accounts.ChangePassword(c.Param("username"), req.Password)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}
