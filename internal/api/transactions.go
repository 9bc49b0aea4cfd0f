package api

import (
	"context"
	"net/url"

	"github.com/mn-works/earnbot/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionStats is the dashboard aggregate.
type TransactionStats struct {
	Earnings struct {
		Total decimal.Decimal `json:"total"`
	} `json:"earnings"`
	Withdrawals struct {
		Total   decimal.Decimal `json:"total"`
		Pending decimal.Decimal `json:"pending"`
	} `json:"withdrawals"`
	Referrals struct {
		Total decimal.Decimal `json:"total"`
	} `json:"referrals"`
}

// Transactions lists the caller's transactions, optionally filtered by type.
func (c *Client) Transactions(ctx context.Context, token string, txType domain.TxType) ([]domain.Transaction, error) {
	query := url.Values{}
	if txType != "" {
		query.Set("type", string(txType))
	}
	var txs []domain.Transaction
	if err := c.get(ctx, token, "/transactions", query, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *Client) TransactionStats(ctx context.Context, token string) (*TransactionStats, error) {
	var stats TransactionStats
	if err := c.get(ctx, token, "/transactions/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
