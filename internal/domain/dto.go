package domain

type TransactionType string

const (
	TransactionPurchase       TransactionType = "purchase"
	TransactionPremiumService TransactionType = "premium_service"
	TransactionPayout         TransactionType = "payout"
	TransactionRefund         TransactionType = "refund"
	TransactionBonus          TransactionType = "bonus"
)

type BoostStatus string

const (
	BoostStatusActive  BoostStatus = "active"
	BoostStatusExpired BoostStatus = "expired"
)

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "pending"
	PayoutStatusApproved PayoutStatus = "approved"
	PayoutStatusRejected PayoutStatus = "rejected"
	PayoutStatusPaid     PayoutStatus = "paid"
)

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusConfirmed ReferralStatus = "confirmed"
)
