package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PackageStatus string

const (
	PackageStatusNone    PackageStatus = "none"
	PackageStatusPending PackageStatus = "pending"
	PackageStatusActive  PackageStatus = "active"
	PackageStatusExpired PackageStatus = "expired"
)

type Wallet struct {
	Balance          decimal.Decimal `json:"balance"`
	Earnings         decimal.Decimal `json:"earnings"`
	ReferralEarnings decimal.Decimal `json:"referralEarnings"`
}

// User is the client's transient view of the backend user record. It is
// replaced wholesale on hydration and merged field-by-field on UpdateUser.
type User struct {
	ID                  string        `json:"_id"`
	Username            string        `json:"username"`
	Email               string        `json:"email"`
	Phone               string        `json:"phone"`
	ReferralCode        string        `json:"referralCode"`
	ReferralCount       int           `json:"referralCount"`
	ReferredBy          string        `json:"referredBy,omitempty"`
	IsAdmin             bool          `json:"isAdmin"`
	IsActive            bool          `json:"isActive"`
	TasksCompleted      int           `json:"tasksCompleted"`
	Wallet              Wallet        `json:"wallet"`
	CurrentPackage      *Package      `json:"currentPackage,omitempty"`
	PendingPackage      *Package      `json:"pendingPackage,omitempty"`
	PackageStatus       PackageStatus `json:"packageStatus"`
	PackagePurchaseDate *time.Time    `json:"packagePurchaseDate,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
}

// ActivePackage returns the package the dashboard should present: the current
// one when set, otherwise a pending purchase awaiting approval.
func (u *User) ActivePackage() *Package {
	if u.CurrentPackage != nil {
		return u.CurrentPackage
	}
	return u.PendingPackage
}

// PackageValidUntil derives the expiry date from the purchase date and the
// package validity period. Nil when no active package or purchase date.
func (u *User) PackageValidUntil() *time.Time {
	if u.PackageStatus != PackageStatusActive || u.PackagePurchaseDate == nil {
		return nil
	}
	pkg := u.ActivePackage()
	if pkg == nil {
		return nil
	}
	t := u.PackagePurchaseDate.Add(time.Duration(pkg.TotalDays) * 24 * time.Hour)
	return &t
}
