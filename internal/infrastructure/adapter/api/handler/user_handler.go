package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/account"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/dto"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/middleware"
)

// UserHandler handles profile reads
type UserHandler struct {
	accounts *account.Service
	logger   coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(accounts *account.Service, logger coreport.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, logger: logger}
}

// Profile handles GET /api/user/profile
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrInvalidToken)
		return
	}

	user, err := h.accounts.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
