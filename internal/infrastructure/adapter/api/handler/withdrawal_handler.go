package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	domainerr "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/wallet"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/dto"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/middleware"
)

// WithdrawalHandler handles payout requests and history
type WithdrawalHandler struct {
	wallet *wallet.Service
	logger coreport.Logger
}

// NewWithdrawalHandler creates a new withdrawal handler instance
func NewWithdrawalHandler(walletService *wallet.Service, logger coreport.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{wallet: walletService, logger: logger}
}

// Withdraw handles POST /api/withdrawals
func (h *WithdrawalHandler) Withdraw(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrInvalidToken)
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	withdrawal, err := h.wallet.Withdraw(c.Request.Context(), userID, amount, req.PixKey)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewWithdrawalResponse(withdrawal))
}

// History handles GET /api/withdrawals
func (h *WithdrawalHandler) History(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrInvalidToken)
		return
	}

	withdrawals, err := h.wallet.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	responses := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for i := range withdrawals {
		responses = append(responses, dto.NewWithdrawalResponse(&withdrawals[i]))
	}
	c.JSON(http.StatusOK, responses)
}
