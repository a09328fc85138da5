package handlers

import (
	"net/http"

	"carebridge/models"
	"carebridge/services/account"
	"carebridge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes registration, login and token validation endpoints.
type AuthHandler struct {
	AccountService account.AccountService
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid registration payload", err.Error())
		return
	}

	resp, err := h.AccountService.Register(req)
	if err != nil {
		logger.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid login payload", err.Error())
		return
	}

	resp, err := h.AccountService.Login(req)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		// Credential failures never reveal which part was wrong.
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateHandler handles GET /api/auth/validate-token. It re-resolves the account
// behind a valid token so clients can restore sessions.
func (h *AuthHandler) ValidateHandler(c *gin.Context) {
	accountID := c.GetString("accountID")
	role := c.GetString("role")

	resp, err := h.AccountService.Validate(accountID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
