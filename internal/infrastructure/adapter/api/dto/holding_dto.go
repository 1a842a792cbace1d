package dto

import (
	"time"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
)

// HoldingResponse is one purchased asset as shown in the portfolio
type HoldingResponse struct {
	ID               uint64     `json:"id"`
	Nome             string     `json:"nome"`
	Preco            string     `json:"preco"`
	RendimentoDiario string     `json:"rendimentoDiario"`
	CompradoEm       time.Time  `json:"compradoEm"`
	UltimoRendimento *time.Time `json:"ultimoRendimento,omitempty"`
}

// AccrueResponse reports the state after one accrual pass
type AccrueResponse struct {
	Ativos    []HoldingResponse `json:"ativos"`
	NovoSaldo string            `json:"novoSaldo"`
}

// PurchaseRequest selects the catalog asset to buy
type PurchaseRequest struct {
	AssetID uint64 `json:"assetId" binding:"required"`
}

// PurchaseResponse confirms the purchase
type PurchaseResponse struct {
	Ativo     HoldingResponse `json:"ativo"`
	NovoSaldo string          `json:"novoSaldo"`
}

// AssetResponse is one catalog entry
type AssetResponse struct {
	ID               uint64 `json:"id"`
	Nome             string `json:"nome"`
	Preco            string `json:"preco"`
	RendimentoDiario string `json:"rendimentoDiario"`
}

// NewHoldingResponse builds a HoldingResponse from the entity
func NewHoldingResponse(holding *entity.Holding) HoldingResponse {
	return HoldingResponse{
		ID:               holding.ID,
		Nome:             holding.AssetName,
		Preco:            entity.FormatAmount(holding.Price),
		RendimentoDiario: entity.FormatAmount(holding.DailyYield),
		CompradoEm:       holding.PurchasedAt,
		UltimoRendimento: holding.LastAccrual,
	}
}

// NewHoldingResponses maps a slice of holdings
func NewHoldingResponses(holdings []entity.Holding) []HoldingResponse {
	responses := make([]HoldingResponse, 0, len(holdings))
	for i := range holdings {
		responses = append(responses, NewHoldingResponse(&holdings[i]))
	}
	return responses
}
