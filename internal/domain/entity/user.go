package entity

import (
	"crypto/rand"
	"math/big"
	"time"

	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
)

// inviteCodeAlphabet matches the code space used by invite links
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// InviteCodeLength is the length of generated invite codes
const InviteCodeLength = 6

// User represents a registered account. The phone number is the login key;
// the balance is stored in centavos and never exposed as a float.
type User struct {
	ID            uint64
	Name          string
	Phone         string
	PasswordHash  string
	balance       int64  // centavos, mutated only through Credit/Debit/SetBalance
	InviteCode    string // this user's own code, handed out to invitees
	InviterCode   string // code the user registered with, empty when none
	ReferralCount uint64
	PixKey        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates a user with a zero balance and a freshly generated invite code
func NewUser(name, phone, passwordHash, inviterCode string, timeProvider coreport.TimeProvider) (*User, error) {
	if name == "" || phone == "" {
		return nil, errs.ErrInvalidRequest
	}
	if passwordHash == "" {
		return nil, errs.ErrInvalidRequest
	}

	now := timeProvider.Now()
	return &User{
		Name:         name,
		Phone:        phone,
		PasswordHash: passwordHash,
		InviteCode:   NewInviteCode(),
		InviterCode:  inviterCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewInviteCode generates a random 6-character alphanumeric invite code
func NewInviteCode() string {
	code := make([]byte, InviteCodeLength)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic("invite code generation: " + err.Error())
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code)
}

// Balance returns the current balance in centavos
func (u *User) Balance() int64 {
	return u.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (u *User) FormattedBalance() string {
	return FormatAmount(u.balance)
}

// SetBalance overwrites the balance directly
func (u *User) SetBalance(centavos int64, timeProvider coreport.TimeProvider) {
	u.balance = centavos
	u.UpdatedAt = timeProvider.Now()
}

// HydrateBalance sets the balance without touching UpdatedAt.
// Repositories use it when rebuilding an entity from a stored row.
func (u *User) HydrateBalance(centavos int64) {
	u.balance = centavos
}

// Credit adds the amount to the balance
func (u *User) Credit(centavos int64, timeProvider coreport.TimeProvider) {
	u.balance += centavos
	u.UpdatedAt = timeProvider.Now()
}

// Debit subtracts the amount from the balance if it is fully covered.
// Returns ErrInsufficientBalance otherwise, leaving the balance untouched.
func (u *User) Debit(centavos int64, timeProvider coreport.TimeProvider) error {
	if u.balance < centavos {
		return errs.ErrInsufficientBalance
	}
	u.balance -= centavos
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// CanDebit checks whether the balance covers the given amount
func (u *User) CanDebit(centavos int64) bool {
	return u.balance >= centavos
}

// HasInviter reports whether the user registered with an invite code
func (u *User) HasInviter() bool {
	return u.InviterCode != ""
}
