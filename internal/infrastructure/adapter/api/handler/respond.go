package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/dto"
)

// respondError maps domain errors to HTTP status codes and a stable
// error payload. Unknown errors become a generic 500.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domainerr.ErrInvalidRequest),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNegativeAmount),
		errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidReference):
		statusCode = http.StatusBadRequest
		message = "Invalid request"
	case errors.Is(err, domainerr.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = "Telefone ou senha incorretos"
	case errors.Is(err, domainerr.ErrInvalidToken):
		statusCode = http.StatusUnauthorized
		message = "Invalid or expired token"
	case errors.Is(err, domainerr.ErrDuplicatePhone):
		statusCode = http.StatusConflict
		message = "Telefone já cadastrado"
	case domainerr.IsInsufficientBalanceError(err):
		statusCode = http.StatusUnprocessableEntity
		message = "Saldo insuficiente"
	case errors.Is(err, domainerr.ErrBelowMinimum):
		statusCode = http.StatusUnprocessableEntity
		message = "Valor abaixo do mínimo"
	case errors.Is(err, domainerr.ErrNoHoldings):
		statusCode = http.StatusUnprocessableEntity
		message = "É necessário possuir ao menos um ativo"
	case domainerr.IsNotFoundError(err):
		statusCode = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, domainerr.ErrGatewayUnavailable):
		statusCode = http.StatusBadGateway
		message = "Payment processor unavailable"
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// respondBadRequest rejects malformed JSON bodies
func respondBadRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: "Invalid request body",
	})
}
