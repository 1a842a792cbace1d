package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
)

// All balances, prices and yields are held in integer centavos. The API
// speaks two-decimal strings ("70.00"); conversion happens here and only
// here, with no floating point involved.

// MaxDecimalPlaces is the number of fraction digits a money string may carry
const MaxDecimalPlaces = 2

// ParseAmount converts a decimal string into centavos. Accepted forms:
// "70", "70.", "70.5", "70.50". Negative values and more than two
// fraction digits are rejected.
func ParseAmount(amount string) (int64, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}
	if trimmed[0] == '-' {
		return 0, errs.ErrNegativeAmount
	}

	whole, frac, _ := strings.Cut(trimmed, ".")
	if len(frac) > MaxDecimalPlaces || strings.Contains(frac, ".") {
		return 0, fmt.Errorf("%w: at most %d decimal places", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: no digits", errs.ErrInvalidAmount)
	}

	// pad the fraction to exactly two digits so the concatenation is centavos
	centavoDigits := whole + frac + strings.Repeat("0", MaxDecimalPlaces-len(frac))

	value, err := strconv.ParseInt(centavoDigits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errs.ErrInvalidAmount, amount)
	}
	return value, nil
}

// FormatAmount renders centavos as a two-decimal string:
// 1015 -> "10.15", 70 -> "0.70", -5 -> "-0.05".
func FormatAmount(centavos int64) string {
	sign := ""
	if centavos < 0 {
		sign = "-"
		centavos = -centavos
	}
	return fmt.Sprintf("%s%d.%02d", sign, centavos/100, centavos%100)
}
