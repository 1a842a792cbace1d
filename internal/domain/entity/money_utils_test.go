package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
)

func TestParseAmountAcceptsUserInput(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		centavos int64
	}{
		{"minimum deposit", "70.00", 7000},
		{"minimum withdrawal", "45.00", 4500},
		{"bare integer", "250", 25000},
		{"single decimal digit", "12.5", 1250},
		{"trailing dot", "99.", 9900},
		{"surrounding whitespace", " 45.00 ", 4500},
		{"smallest unit", "0.01", 1},
		{"zero", "0", 0},
		{"large balance", "1234567.89", 123456789},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			centavos, err := ParseAmount(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.centavos, centavos)
		})
	}
}

func TestParseAmountRejectsMalformedInput(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", errs.ErrInvalidAmount},
		{"whitespace only", "   ", errs.ErrInvalidAmount},
		{"negative", "-45.00", errs.ErrNegativeAmount},
		{"three decimal digits", "70.005", errs.ErrInvalidAmount},
		{"letters", "setenta", errs.ErrInvalidAmount},
		{"thousands separator", "1,000.00", errs.ErrInvalidAmount},
		{"double dot", "70.00.00", errs.ErrInvalidAmount},
		{"currency prefix", "R$70", errs.ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAmount(tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		centavos int64
		want     string
	}{
		{7000, "70.00"},
		{4500, "45.00"},
		{1500, "15.00"},
		{1, "0.01"},
		{10, "0.10"},
		{0, "0.00"},
		{123456789, "1234567.89"},
		{-4500, "-45.00"},
		{-5, "-0.05"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatAmount(tc.centavos))
		})
	}
}

func TestFormatAmountInvertsParseAmount(t *testing.T) {
	for _, asset := range DefaultCatalog() {
		formatted := FormatAmount(asset.Price)
		parsed, err := ParseAmount(formatted)
		require.NoError(t, err)
		assert.Equal(t, asset.Price, parsed, "price of %s", asset.Name)
	}
}
