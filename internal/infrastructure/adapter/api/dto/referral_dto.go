package dto

import (
	"time"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
)

// ReferralResponse is one invited user as shown on the inviter's team page
type ReferralResponse struct {
	Nome        string    `json:"nome"`
	Telefone    string    `json:"telefone"`
	Bonus       string    `json:"bonus"`
	BonusPago   bool      `json:"bonusPago"`
	ConvidadoEm time.Time `json:"convidadoEm"`
}

// NewReferralListResponse builds the inviter's referral list
func NewReferralListResponse(records []entity.ReferralRecord) []ReferralResponse {
	out := make([]ReferralResponse, 0, len(records))
	for i := range records {
		record := &records[i]
		out = append(out, ReferralResponse{
			Nome:        record.InvitedName,
			Telefone:    record.InvitedPhone,
			Bonus:       entity.FormatAmount(record.Bonus),
			BonusPago:   record.BonusPaid,
			ConvidadoEm: record.CreatedAt,
		})
	}
	return out
}
