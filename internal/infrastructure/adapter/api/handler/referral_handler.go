package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/referral"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/dto"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/middleware"
)

// ReferralHandler serves the inviter's referral list
type ReferralHandler struct {
	referrals *referral.Service
	logger    coreport.Logger
}

// NewReferralHandler creates a new referral handler instance
func NewReferralHandler(referrals *referral.Service, logger coreport.Logger) *ReferralHandler {
	return &ReferralHandler{referrals: referrals, logger: logger}
}

// List handles GET /api/referrals
func (h *ReferralHandler) List(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrInvalidToken)
		return
	}

	records, err := h.referrals.ListByInviter(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReferralListResponse(records))
}
