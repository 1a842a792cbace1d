package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	domainerr "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/yield"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/dto"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/middleware"
)

// YieldHandler handles accrual triggers
type YieldHandler struct {
	yield  *yield.Service
	logger coreport.Logger
}

// NewYieldHandler creates a new yield handler instance
func NewYieldHandler(yieldService *yield.Service, logger coreport.Logger) *YieldHandler {
	return &YieldHandler{yield: yieldService, logger: logger}
}

// Accrue handles POST /api/yield/accrue. The client calls it on page load;
// a second call within the same day is a no-op.
func (h *YieldHandler) Accrue(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrInvalidToken)
		return
	}

	result, err := h.yield.Accrue(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccrueResponse{
		Ativos:    dto.NewHoldingResponses(result.Holdings),
		NovoSaldo: entity.FormatAmount(result.NewBalance),
	})
}
