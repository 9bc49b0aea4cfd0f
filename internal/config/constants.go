package config

import "time"

const (
	// Payment proof upload cap
	MaxProofSizeBytes = 2 * 1024 * 1024

	// Referral bonus shown on the referrals screen (₨ per referral)
	ReferralBonusAmount = 10

	// Backend request timeout
	RequestTimeout = 30 * time.Second

	// Link preview fetch timeout
	PreviewTimeout = 10 * time.Second

	// Admin user listing page size
	UsersPerPage = 20

	// Referral deep-link payload prefix: /start r_<code>
	ReferralPayloadPrefix = "r_"
)
