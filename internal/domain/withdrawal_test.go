package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxBreakdown(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		wantTax string
		wantNet string
	}{
		{"minimum amount", 300, "24", "276"},
		{"round figure", 500, "40", "460"},
		{"thousand", 1000, "80", "920"},
		{"rounds to nearest rupee", 333, "27", "306"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, net := TaxBreakdown(decimal.NewFromInt(tt.amount))
			assert.Equal(t, tt.wantTax, tax.String())
			assert.Equal(t, tt.wantNet, net.String())
		})
	}
}

func TestValidateWithdrawalAmount(t *testing.T) {
	balance := decimal.NewFromInt(1000)

	tests := []struct {
		name    string
		amount  int64
		wantErr error
	}{
		{"below minimum", 150, ErrAmountBelowMinimum},
		{"just below minimum", 299, ErrAmountBelowMinimum},
		{"exactly minimum", 300, nil},
		{"within balance", 500, nil},
		{"full balance", 1000, nil},
		{"over balance", 1001, ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWithdrawalAmount(decimal.NewFromInt(tt.amount), balance)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWithdrawalAmountMinimumBeforeBalance(t *testing.T) {
	// A broke account asking for a tiny amount gets the minimum error, not
	// the balance one.
	err := ValidateWithdrawalAmount(decimal.NewFromInt(100), decimal.NewFromInt(50))
	assert.ErrorIs(t, err, ErrAmountBelowMinimum)
}

func TestMethodNeedsPhone(t *testing.T) {
	assert.True(t, MethodNeedsPhone(MethodNayaPay))
	assert.True(t, MethodNeedsPhone(MethodZindigi))
	assert.False(t, MethodNeedsPhone(MethodJazzCash))
	assert.False(t, MethodNeedsPhone(MethodEasypaisa))
	assert.False(t, MethodNeedsPhone(MethodRaast))
}
