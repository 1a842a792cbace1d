package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeBelowMinimum        = 4004
	CodeDuplicatePhone      = 4005
	CodeNoHoldings          = 4006
	CodeInvalidReference    = 4007
	CodeInvalidCredentials  = 4010
	CodeInvalidToken        = 4011
	CodeUserNotFound        = 4040
	CodeAssetNotFound       = 4041

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeGatewayUnavailable = 5020
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a user's balance cannot cover a debit
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when a monetary amount has an invalid format
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a monetary amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrBelowMinimum is returned when a deposit or withdrawal is under the configured floor
	ErrBelowMinimum = errors.New("amount is below the configured minimum")

	// ErrDuplicatePhone is returned when registering a phone number that already exists
	ErrDuplicatePhone = errors.New("phone number is already registered")

	// ErrNoHoldings is returned when a withdrawal is requested without any asset holding
	ErrNoHoldings = errors.New("at least one asset holding is required")

	// ErrInvalidReference is returned when a payment external reference cannot be parsed
	ErrInvalidReference = errors.New("invalid external reference format")

	// ErrInvalidCredentials is returned for both unknown phones and wrong passwords,
	// deliberately indistinguishable to avoid account enumeration
	ErrInvalidCredentials = errors.New("invalid phone or password")

	// ErrInvalidToken is returned when a session token is missing, malformed or expired
	ErrInvalidToken = errors.New("invalid or expired session token")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrAssetNotFound is returned when a purchase names an asset outside the catalog
	ErrAssetNotFound = errors.New("asset not found in catalog")

	// ErrHoldingNotFound is returned when the requested holding doesn't exist
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrReferralNotFound is returned when no referral record links inviter and invitee
	ErrReferralNotFound = errors.New("referral record not found")

	// ErrBonusAlreadyPaid is returned when a referral bonus was already settled
	ErrBonusAlreadyPaid = errors.New("referral bonus already paid")

	// ErrDepositAlreadyCredited is returned when a processor payment id was
	// already credited, i.e. the webhook is a redelivery
	ErrDepositAlreadyCredited = errors.New("deposit already credited")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrGatewayUnavailable is returned when the payment gateway cannot be reached
	// or answers with an unexpected payload
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrBelowMinimum):
		return CodeBelowMinimum
	case errors.Is(err, ErrDuplicatePhone):
		return CodeDuplicatePhone
	case errors.Is(err, ErrNoHoldings):
		return CodeNoHoldings
	case errors.Is(err, ErrInvalidReference):
		return CodeInvalidReference
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrInvalidToken):
		return CodeInvalidToken
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrAssetNotFound):
		return CodeAssetNotFound
	case errors.Is(err, ErrGatewayUnavailable):
		return CodeGatewayUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID      uint64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s, available %s",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// SettlementError describes a referral settlement failure with enough
// context to reconcile the inviter's balance by hand if needed.
type SettlementError struct {
	InviterID    uint64
	InvitedPhone string
	Stage        string
	Err          error
}

// Error implements the error interface
func (e *SettlementError) Error() string {
	return fmt.Sprintf("referral settlement failed at %s (inviter: %d, invited phone: %s): %v",
		e.Stage, e.InviterID, e.InvitedPhone, e.Err)
}

// Unwrap returns the underlying error
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *SettlementError) LogFields() map[string]any {
	return map[string]any{
		"error_type":    "settlement_error",
		"inviter_id":    e.InviterID,
		"invited_phone": e.InvitedPhone,
		"stage":         e.Stage,
		"error":         e.Err.Error(),
	}
}

// NewSettlementError creates a detailed referral settlement error
func NewSettlementError(inviterID uint64, invitedPhone, stage string, err error) error {
	return &SettlementError{
		InviterID:    inviterID,
		InvitedPhone: invitedPhone,
		Stage:        stage,
		Err:          err,
	}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAssetNotFound) ||
		errors.Is(err, ErrHoldingNotFound) ||
		errors.Is(err, ErrReferralNotFound)
}

// IsBusinessRejection checks if the error is a user-visible business rule
// rejection rather than a server fault
func IsBusinessRejection(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrBelowMinimum) ||
		errors.Is(err, ErrDuplicatePhone) ||
		errors.Is(err, ErrNoHoldings)
}
