package gateway

import (
	"context"
)

// Payment statuses as reported by the processor
const (
	PaymentStatusApproved = "approved"
	PaymentStatusPending  = "pending"
)

// CreatePaymentRequest describes a PIX charge to be created at the
// processor. Amount is centavos; the adapter converts to the processor's
// decimal representation.
type CreatePaymentRequest struct {
	Amount            int64
	Description       string
	ExternalReference string
}

// PixPayment is the payable artifact returned on charge creation
type PixPayment struct {
	ID           string
	QRCodeBase64 string
	TicketURL    string
}

// Payment is the processor's view of a charge, fetched by id
type Payment struct {
	ID                string
	Status            string
	Amount            int64 // centavos
	ExternalReference string
}

// PaymentGateway abstracts the payment processor's REST API
type PaymentGateway interface {
	// CreatePixPayment creates a PIX charge and returns the QR payload.
	// Each call sends a fresh idempotency key.
	//
	// Possible errors:
	// - ErrGatewayUnavailable: If the processor cannot be reached or
	//   answers with an unexpected payload
	CreatePixPayment(ctx context.Context, req CreatePaymentRequest) (*PixPayment, error)

	// GetPayment fetches a charge by the processor's payment id
	//
	// Possible errors:
	// - ErrGatewayUnavailable: If the processor cannot be reached
	// - ErrNotFound: If the payment id is unknown to the processor
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}
