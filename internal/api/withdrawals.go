package api

import (
	"context"

	"github.com/mn-works/earnbot/internal/domain"
	"github.com/shopspring/decimal"
)

type WithdrawalRequest struct {
	Amount         decimal.Decimal       `json:"amount"`
	Method         string                `json:"method"`
	AccountDetails domain.AccountDetails `json:"accountDetails"`
}

func (c *Client) RequestWithdrawal(ctx context.Context, token string, req WithdrawalRequest) (*domain.Withdrawal, error) {
	var wd domain.Withdrawal
	if err := c.post(ctx, token, "/withdrawals/request", req, &wd); err != nil {
		return nil, err
	}
	return &wd, nil
}

func (c *Client) Withdrawals(ctx context.Context, token string) ([]domain.Withdrawal, error) {
	var wds []domain.Withdrawal
	if err := c.get(ctx, token, "/withdrawals", nil, &wds); err != nil {
		return nil, err
	}
	return wds, nil
}
