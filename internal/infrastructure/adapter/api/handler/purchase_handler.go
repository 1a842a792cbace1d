package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	domainerr "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/purchase"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/dto"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/middleware"
)

// PurchaseHandler handles catalog listing and asset purchases
type PurchaseHandler struct {
	catalog   entity.Catalog
	purchases *purchase.Service
	logger    coreport.Logger
}

// NewPurchaseHandler creates a new purchase handler instance
func NewPurchaseHandler(catalog entity.Catalog, purchases *purchase.Service, logger coreport.Logger) *PurchaseHandler {
	return &PurchaseHandler{catalog: catalog, purchases: purchases, logger: logger}
}

// ListAssets handles GET /api/assets
func (h *PurchaseHandler) ListAssets(c *gin.Context) {
	assets := make([]dto.AssetResponse, 0, len(h.catalog))
	for _, asset := range h.catalog {
		assets = append(assets, dto.AssetResponse{
			ID:               asset.ID,
			Nome:             asset.Name,
			Preco:            entity.FormatAmount(asset.Price),
			RendimentoDiario: entity.FormatAmount(asset.DailyYield),
		})
	}
	c.JSON(http.StatusOK, assets)
}

// Buy handles POST /api/purchases
func (h *PurchaseHandler) Buy(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrInvalidToken)
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	result, err := h.purchases.Buy(c.Request.Context(), userID, req.AssetID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PurchaseResponse{
		Ativo:     dto.NewHoldingResponse(result.Holding),
		NovoSaldo: entity.FormatAmount(result.NewBalance),
	})
}

// ListHoldings handles GET /api/holdings
func (h *PurchaseHandler) ListHoldings(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrInvalidToken)
		return
	}

	holdings, err := h.purchases.ListHoldings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewHoldingResponses(holdings))
}
