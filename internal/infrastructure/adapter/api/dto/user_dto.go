package dto

import (
	"github.com/rafaelmeira/boatvest/internal/domain/entity"
)

// UserResponse is the account snapshot returned by auth and profile endpoints
type UserResponse struct {
	ID            uint64 `json:"id"`
	Nome          string `json:"nome"`
	Telefone      string `json:"telefone"`
	Saldo         string `json:"saldo"`
	CodigoConvite string `json:"codigoConvite"`
	Indicacoes    uint64 `json:"indicacoes"`
	ChavePix      string `json:"chavePix,omitempty"`
}

// NewUserResponse builds a UserResponse from the entity
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Nome:          user.Name,
		Telefone:      user.Phone,
		Saldo:         user.FormattedBalance(),
		CodigoConvite: user.InviteCode,
		Indicacoes:    user.ReferralCount,
		ChavePix:      user.PixKey,
	}
}
