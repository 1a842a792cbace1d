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

// PaymentHandler handles deposit charges and processor callbacks
type PaymentHandler struct {
	wallet *wallet.Service
	logger coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(walletService *wallet.Service, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{wallet: walletService, logger: logger}
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrInvalidToken)
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	payment, err := h.wallet.CreateDeposit(c.Request.Context(), userID, amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePaymentResponse{
		PaymentID:    payment.ID,
		QRCodeBase64: payment.QRCodeBase64,
		TicketURL:    payment.TicketURL,
	})
}

// PaymentStatus handles POST /api/payments/status
func (h *PaymentHandler) PaymentStatus(c *gin.Context) {
	var req dto.PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	payment, err := h.wallet.PaymentStatus(c.Request.Context(), req.PaymentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentStatusResponse{
		PaymentID: payment.ID,
		Status:    payment.Status,
		Amount:    entity.FormatAmount(payment.Amount),
	})
}

// Webhook handles POST /api/webhooks/mercadopago. It always answers 200 for
// payloads we deliberately ignore, so the processor stops redelivering them.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	if err := h.wallet.HandlePaymentEvent(c.Request.Context(), req.Type, req.Data.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}
