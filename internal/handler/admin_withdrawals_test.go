package handler

import (
	"testing"

	"github.com/mn-works/earnbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestWithdrawalDecisionMessage(t *testing.T) {
	tests := []struct {
		status domain.WithdrawalStatus
		want   string
	}{
		{domain.WithdrawalProcessing, "Withdrawal moved to processing."},
		{domain.WithdrawalCompleted, "Withdrawal completed. Payout confirmed."},
		{domain.WithdrawalRejected, "Withdrawal rejected. The full amount was refunded to the user's balance."},
		{domain.WithdrawalPending, "Withdrawal updated."},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, withdrawalDecisionMessage(tt.status))
		})
	}
}

func TestWithdrawalDecisionMessageStatesRefundOnRejection(t *testing.T) {
	assert.Contains(t, withdrawalDecisionMessage(domain.WithdrawalRejected), "refunded")
}
