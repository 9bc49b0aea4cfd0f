package api

import (
	"context"

	"github.com/mn-works/earnbot/internal/domain"
)

type PurchaseRequest struct {
	PackageID     string `json:"packageId"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentProof  string `json:"paymentProof,omitempty"` // data URL
	TransactionID string `json:"transactionId,omitempty"`
}

func (c *Client) Packages(ctx context.Context, token string) ([]domain.Package, error) {
	var pkgs []domain.Package
	if err := c.get(ctx, token, "/packages", nil, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (c *Client) Package(ctx context.Context, token, id string) (*domain.Package, error) {
	var pkg domain.Package
	if err := c.get(ctx, token, "/packages/"+id, nil, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// PurchasePackage submits the payment proof and creates a pending purchase
// transaction awaiting admin approval.
func (c *Client) PurchasePackage(ctx context.Context, token string, req PurchaseRequest) error {
	return c.post(ctx, token, "/packages/purchase", req, nil)
}
