package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxTypeTaskReward      TxType = "task_reward"
	TxTypeReferralBonus   TxType = "referral_bonus"
	TxTypePackagePurchase TxType = "package_purchase"
	TxTypeWithdrawal      TxType = "withdrawal"
)

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusCompleted TxStatus = "completed"
	TxStatusFailed    TxStatus = "failed"
	TxStatusCancelled TxStatus = "cancelled"
)

type Transaction struct {
	ID             string          `json:"_id"`
	User           *TxUser         `json:"user,omitempty"`
	Type           TxType          `json:"type"`
	Amount         decimal.Decimal `json:"amount"` // signed
	Status         TxStatus        `json:"status"`
	Description    string          `json:"description"`
	PaymentProof   string          `json:"paymentProof,omitempty"` // data URL or external URL
	TransactionID  string          `json:"transactionId,omitempty"`
	RelatedPackage *Package        `json:"relatedPackage,omitempty"`
	RelatedTask    string          `json:"relatedTask,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// TxUser is the populated user reference on admin transaction listings.
type TxUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
