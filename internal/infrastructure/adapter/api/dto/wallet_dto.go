package dto

import (
	"time"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
)

// CreatePaymentRequest asks for a PIX deposit charge. Amount is a
// two-decimal string, e.g. "70.00".
type CreatePaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// CreatePaymentResponse returns the payable PIX artifacts
type CreatePaymentResponse struct {
	PaymentID    string `json:"payment_id"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}

// PaymentStatusRequest asks for the processor's view of a charge
type PaymentStatusRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

// PaymentStatusResponse reports the charge status
type PaymentStatusResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
}

// WebhookRequest is the processor's notification payload. Only the event
// type and the payment id are read; everything else is re-fetched from the
// processor rather than trusted from the webhook body.
type WebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// WithdrawRequest asks for a payout. Amount is a two-decimal string.
type WithdrawRequest struct {
	Amount string `json:"amount" binding:"required"`
	PixKey string `json:"pix_key" binding:"required"`
}

// WithdrawalResponse is one payout request record
type WithdrawalResponse struct {
	ID           uint64    `json:"id"`
	Valor        string    `json:"valor"`
	ChavePix     string    `json:"chavePix"`
	SolicitadoEm time.Time `json:"solicitadoEm"`
}

// NewWithdrawalResponse builds a WithdrawalResponse from the entity
func NewWithdrawalResponse(withdrawal *entity.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:           withdrawal.ID,
		Valor:        withdrawal.FormattedAmount(),
		ChavePix:     withdrawal.PixKey,
		SolicitadoEm: withdrawal.RequestedAt,
	}
}
