package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalMethod string

const (
	MethodNayaPay   WithdrawalMethod = "nayapay"
	MethodJazzCash  WithdrawalMethod = "jazzcash"
	MethodEasypaisa WithdrawalMethod = "easypaisa"
	MethodRaast     WithdrawalMethod = "raast"
	MethodZindigi   WithdrawalMethod = "zindigi"
)

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalRejected   WithdrawalStatus = "rejected"
)

type AccountDetails struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
}

type Withdrawal struct {
	ID             string           `json:"_id"`
	User           *TxUser          `json:"user,omitempty"`
	Amount         decimal.Decimal  `json:"amount"` // gross requested
	Method         WithdrawalMethod `json:"method"`
	AccountDetails AccountDetails   `json:"accountDetails"`
	TaxAmount      decimal.Decimal  `json:"taxAmount"`
	NetAmount      decimal.Decimal  `json:"netAmount"`
	Status         WithdrawalStatus `json:"status"`
	Remarks        string           `json:"remarks,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// MethodNeedsPhone reports whether the withdraw form collects a phone number
// for the method instead of an account number.
func MethodNeedsPhone(m WithdrawalMethod) bool {
	return m == MethodNayaPay || m == MethodZindigi
}

// MinWithdrawalAmount in rupees. The same check runs server-side; the backend
// value is authoritative.
const MinWithdrawalAmount = 300

var withdrawalTaxRate = decimal.NewFromFloat(0.08)

// TaxBreakdown computes the client-side preview of the flat withdrawal tax:
// tax = round(amount * 8%), net = amount - tax.
func TaxBreakdown(amount decimal.Decimal) (tax, net decimal.Decimal) {
	tax = amount.Mul(withdrawalTaxRate).Round(0)
	net = amount.Sub(tax)
	return tax, net
}

// ValidateWithdrawalAmount applies the pre-submission checks: minimum amount
// first, then available balance.
func ValidateWithdrawalAmount(amount, balance decimal.Decimal) error {
	if amount.LessThan(decimal.NewFromInt(MinWithdrawalAmount)) {
		return ErrAmountBelowMinimum
	}
	if amount.GreaterThan(balance) {
		return ErrInsufficientBalance
	}
	return nil
}
