package handlers

import (
	"errors"
	"net/http"

	"rotacare/services/account"
	"rotacare/utils"

	"github.com/gin-gonic/gin"
)

// AccountHandler exposes coordinator sign-in and provisioning.
type AccountHandler struct {
	Service account.AccountService
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(svc account.AccountService) *AccountHandler {
	return &AccountHandler{Service: svc}
}

// SignIn exchanges credentials for a JWT.
func (h *AccountHandler) SignIn(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	token, acct, err := h.Service.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.As(err, &account.InvalidCredentialsError{}) {
			utils.JSONError(c, http.StatusUnauthorized, "sign in failed", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "sign in failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "account": acct})
}

// SignOut revokes the presented token.
func (h *AccountHandler) SignOut(c *gin.Context) {
	token, _ := c.Get("token")
	tokenString, _ := token.(string)
	if err := h.Service.SignOut(c.Request.Context(), tokenString); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "sign out failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": true})
}

// Create provisions a coordinator account (admin token required).
func (h *AccountHandler) Create(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	acct, err := h.Service.Create(c.Request.Context(), input.Email, input.Name, input.Role, input.Password)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create account", err.Error())
		return
	}
	c.JSON(http.StatusCreated, acct)
}

// Me returns the authenticated coordinator's account.
func (h *AccountHandler) Me(c *gin.Context) {
	accountID := c.GetString("accountID")
	acct, err := h.Service.Get(c.Request.Context(), accountID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "account not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, acct)
}
