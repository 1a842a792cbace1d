package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/gateway"
)

const defaultBaseURL = "https://api.mercadopago.com"

// Config holds Mercado Pago credentials and tuning
type Config struct {
	AccessToken string        `mapstructure:"access_token"`
	PayerEmail  string        `mapstructure:"payer_email"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// MercadoPagoGateway implements PaymentGateway against the Mercado Pago
// payments REST API
type MercadoPagoGateway struct {
	config Config
	client *http.Client
	logger coreport.Logger
}

// NewMercadoPagoGateway creates a gateway client
func NewMercadoPagoGateway(config Config, logger coreport.Logger) gateway.PaymentGateway {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	return &MercadoPagoGateway{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// createPaymentRequest mirrors the POST /v1/payments body
type createPaymentRequest struct {
	TransactionAmount float64      `json:"transaction_amount"`
	Description       string       `json:"description"`
	PaymentMethodID   string       `json:"payment_method_id"`
	ExternalReference string       `json:"external_reference"`
	Payer             paymentPayer `json:"payer"`
}

type paymentPayer struct {
	Email string `json:"email"`
}

// paymentResponse mirrors the fields we read from Mercado Pago's payment object
type paymentResponse struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	TransactionAmount  float64     `json:"transaction_amount"`
	ExternalReference  string      `json:"external_reference"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCodeBase64 string `json:"qr_code_base64"`
			TicketURL    string `json:"ticket_url"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

// CreatePixPayment creates a PIX charge and returns the QR payload
func (g *MercadoPagoGateway) CreatePixPayment(ctx context.Context, req gateway.CreatePaymentRequest) (*gateway.PixPayment, error) {
	body := createPaymentRequest{
		TransactionAmount: centavosToDecimal(req.Amount),
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.ExternalReference,
		Payer:             paymentPayer{Email: g.config.PayerEmail},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.config.BaseURL+"/v1/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.config.AccessToken)
	// a fresh key per charge; retries of the same charge are the caller's concern
	httpReq.Header.Set("X-Idempotency-Key", uuid.NewString())

	var resp paymentResponse
	if err := g.do(httpReq, &resp); err != nil {
		return nil, err
	}

	g.logger.Info("PIX charge created at processor", map[string]any{
		"payment_id": resp.ID.String(),
		"reference":  req.ExternalReference,
	})

	return &gateway.PixPayment{
		ID:           resp.ID.String(),
		QRCodeBase64: resp.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:    resp.PointOfInteraction.TransactionData.TicketURL,
	}, nil
}

// GetPayment fetches a charge by the processor's payment id
func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.config.BaseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.config.AccessToken)

	var resp paymentResponse
	if err := g.do(httpReq, &resp); err != nil {
		return nil, err
	}

	return &gateway.Payment{
		ID:                resp.ID.String(),
		Status:            resp.Status,
		Amount:            decimalToCentavos(resp.TransactionAmount),
		ExternalReference: resp.ExternalReference,
	}, nil
}

func (g *MercadoPagoGateway) do(req *http.Request, out *paymentResponse) error {
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("Payment processor request failed", map[string]any{
			"method": req.Method,
			"url":    req.URL.Path,
			"error":  err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}

	if resp.StatusCode == http.StatusNotFound {
		return errs.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Error("Payment processor returned error status", map[string]any{
			"method": req.Method,
			"url":    req.URL.Path,
			"status": resp.StatusCode,
			"body":   string(raw),
		})
		return fmt.Errorf("%w: unexpected status %d", errs.ErrGatewayUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}
	return nil
}

// centavosToDecimal converts an integer centavo amount to the processor's
// two-decimal representation
func centavosToDecimal(centavos int64) float64 {
	return float64(centavos) / 100
}

// decimalToCentavos converts the processor's decimal amount back to
// centavos, rounding to absorb float noise
func decimalToCentavos(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
