package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/account"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/dto"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	accounts *account.Service
	logger   coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(accounts *account.Service, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, logger: logger}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Nome, req.Telefone, req.Senha, req.CodigoConvite)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	user, token, err := h.accounts.Login(c.Request.Context(), req.Telefone, req.Senha)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}
